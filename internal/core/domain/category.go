package domain

import "time"

// ParentLabel is the closed top-level domain an item or category belongs to.
type ParentLabel string

const (
	ParentPhysical ParentLabel = "physical"
	ParentDigital  ParentLabel = "digital"
)

// Valid reports whether the label is one of the two known domains.
func (p ParentLabel) Valid() bool {
	return p == ParentPhysical || p == ParentDigital
}

// Category is a two-level classification label (parent domain + free-text child)
// owned by exactly one account.
type Category struct {
	ID          string      `json:"id"`
	Owner       string      `json:"-"`
	ParentLabel ParentLabel `json:"parent_label"`
	ChildLabel  string      `json:"child_label"`
	CreatedAt   time.Time   `json:"created_at"`
}

// DefaultTaxonomy is the category set seeded into an empty store on first
// access, covering both top-level domains.
var DefaultTaxonomy = map[ParentLabel][]string{
	ParentPhysical: {"apparel", "daily consumables", "gadgets", "sports & health", "collectibles", "other"},
	ParentDigital:  {"work", "study", "life", "leisure", "other"},
}
