package domain

import "time"

// LongHeldThresholdDays is the age past which an item is flagged as a
// decluttering candidate. Advisory only, nothing is persisted.
const LongHeldThresholdDays = 180

// Item is one inventoried physical or digital possession record. Image holds
// the normalized JPEG bytes and is nil when no photo was uploaded.
type Item struct {
	ID          string      `json:"id"`
	Owner       string      `json:"-"`
	ParentLabel ParentLabel `json:"parent_label"`
	ChildLabel  string      `json:"child_label"`
	Name        string      `json:"name"`
	Note        string      `json:"note"`
	Suggestion  string      `json:"suggestion"`
	NamingRule  string      `json:"naming_rule"`
	Image       []byte      `json:"-"`
	HasImage    bool        `json:"has_image"`
	CreatedDate time.Time   `json:"created_date"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// DaysHeld returns the whole days elapsed between the item's start date and
// ref, never negative.
func (it *Item) DaysHeld(ref time.Time) int {
	days := int(ref.Sub(it.CreatedDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// LongHeld reports whether the item has been held past the advisory threshold.
func (it *Item) LongHeld(ref time.Time) bool {
	return it.DaysHeld(ref) > LongHeldThresholdDays
}
