package ports

import (
	"context"

	"github.com/tidystash/inventory-system/internal/core/domain"
)

// CategoryService manages one account's two-level taxonomy.
type CategoryService interface {
	// List seeds the defaults on first access, then returns the owner's
	// categories, optionally filtered to one parent label ("" = all).
	List(ctx context.Context, owner, parent string) ([]*domain.Category, error)
	Add(ctx context.Context, owner, parent, child string) (*domain.Category, error)
	// Remove deletes every category with the child label under any parent
	// label and returns the number removed (0 is not an error).
	Remove(ctx context.Context, owner, child string) (int64, error)
	EnsureDefaults(ctx context.Context, owner string) error
}
