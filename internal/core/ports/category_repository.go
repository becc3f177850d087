package ports

import (
	"context"

	"github.com/tidystash/inventory-system/internal/core/domain"
)

// CategoryRepository defines tenant-scoped persistence for taxonomy labels.
type CategoryRepository interface {
	// Insert stores one category. A duplicate (owner, parent, child) triple
	// yields domain.ErrDuplicateLabel.
	Insert(ctx context.Context, category *domain.Category) (*domain.Category, error)
	// InsertBatch stores several categories in one write (default seeding).
	InsertBatch(ctx context.Context, categories []*domain.Category) error
	// List returns the owner's categories in insertion order, optionally
	// filtered to one parent label ("" = all).
	List(ctx context.Context, owner string, parent domain.ParentLabel) ([]*domain.Category, error)
	CountByOwner(ctx context.Context, owner string) (int64, error)
	// DeleteByChildLabel removes every row with the child label under any
	// parent, returning the number removed.
	DeleteByChildLabel(ctx context.Context, owner, childLabel string) (int64, error)
	DeleteByOwner(ctx context.Context, owner string) error
}
