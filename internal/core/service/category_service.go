package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tidystash/inventory-system/internal/core/domain"
	"github.com/tidystash/inventory-system/internal/core/ports"
)

// CategoryService manages one account's two-level taxonomy.
type CategoryService struct {
	repo   ports.CategoryRepository
	logger zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

// List returns the owner's categories in insertion order, seeding the default
// taxonomy first when the store is empty.
func (s *CategoryService) List(ctx context.Context, owner, parent string) ([]*domain.Category, error) {
	if err := s.EnsureDefaults(ctx, owner); err != nil {
		return nil, err
	}

	var p domain.ParentLabel
	if parent != "" {
		p = domain.ParentLabel(parent)
		if !p.Valid() {
			return nil, domain.ErrInvalidParent
		}
	}
	return s.repo.List(ctx, owner, p)
}

// Add appends a new child label under the given parent domain.
func (s *CategoryService) Add(ctx context.Context, owner, parent, child string) (*domain.Category, error) {
	child = strings.TrimSpace(child)
	if child == "" {
		return nil, domain.ErrEmptyLabel
	}
	p := domain.ParentLabel(parent)
	if !p.Valid() {
		return nil, domain.ErrInvalidParent
	}

	return s.repo.Insert(ctx, &domain.Category{
		Owner:       owner,
		ParentLabel: p,
		ChildLabel:  child,
		CreatedAt:   time.Now().UTC(),
	})
}

// Remove deletes every category with the child label under any parent label.
// Deliberately coarse: the label is the user-facing handle, not the id.
func (s *CategoryService) Remove(ctx context.Context, owner, child string) (int64, error) {
	child = strings.TrimSpace(child)
	if child == "" {
		return 0, domain.ErrEmptyLabel
	}

	removed, err := s.repo.DeleteByChildLabel(ctx, owner, child)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info().Str("owner", owner).Str("child_label", child).Int64("removed", removed).Msg("categories removed")
	}
	return removed, nil
}

// EnsureDefaults seeds the default taxonomy when the owner has no categories
// yet. Idempotent: a non-empty store is left untouched.
func (s *CategoryService) EnsureDefaults(ctx context.Context, owner string) error {
	count, err := s.repo.CountByOwner(ctx, owner)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	var seeds []*domain.Category
	for _, parent := range []domain.ParentLabel{domain.ParentPhysical, domain.ParentDigital} {
		for _, child := range domain.DefaultTaxonomy[parent] {
			seeds = append(seeds, &domain.Category{
				Owner:       owner,
				ParentLabel: parent,
				ChildLabel:  child,
				CreatedAt:   now,
			})
		}
	}

	if err := s.repo.InsertBatch(ctx, seeds); err != nil {
		return err
	}
	s.logger.Info().Str("owner", owner).Int("seeded", len(seeds)).Msg("default taxonomy seeded")
	return nil
}
