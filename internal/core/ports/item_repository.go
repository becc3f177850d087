package ports

import (
	"context"

	"github.com/tidystash/inventory-system/internal/core/domain"
)

// ListItemsFilter carries all query parameters for listing items. Owner is
// always enforced by the service layer; every query is tenant-scoped.
type ListItemsFilter struct {
	Owner       string
	Query       string // optional: case-insensitive substring across all text fields
	ParentLabel string // optional: filter by top-level domain
	ChildLabel  string // optional: filter by child label
	Page        int    // 1-based
	Limit       int    // max rows per page (capped at 100 by service)
}

// ItemRepository defines tenant-scoped persistence operations for items.
// Read methods never load image bytes except FindImage.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	FindByID(ctx context.Context, owner, id string) (*domain.Item, error)
	FindImage(ctx context.Context, owner, id string) ([]byte, error)
	// List returns a page of items matching filter, newest-first, and the total count.
	List(ctx context.Context, filter ListItemsFilter) ([]*domain.Item, int64, error)
	// Update replaces the item's stored fields. Image bytes are rewritten only
	// when setImage is true; otherwise the stored image is left untouched.
	Update(ctx context.Context, item *domain.Item, setImage bool) error
	Delete(ctx context.Context, owner, id string) error
	// DeleteByOwner purges every item belonging to owner (account deletion).
	DeleteByOwner(ctx context.Context, owner string) error
}
