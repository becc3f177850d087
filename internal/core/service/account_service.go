package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tidystash/inventory-system/internal/core/domain"
	"github.com/tidystash/inventory-system/internal/core/ports"
)

// AccountService implements the administrator-only account operations.
type AccountService struct {
	accounts   ports.AccountRepository
	items      ports.ItemRepository
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewAccountService(
	accounts ports.AccountRepository,
	items ports.ItemRepository,
	categories ports.CategoryRepository,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{
		accounts:   accounts,
		items:      items,
		categories: categories,
		logger:     logger,
	}
}

// ListAccounts returns every registered account. Admin only.
func (s *AccountService) ListAccounts(ctx context.Context, actor ports.Actor) ([]*domain.Account, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.accounts.List(ctx)
}

// DeleteAccount removes an account and purges its per-user item store.
// The administrator cannot delete itself.
func (s *AccountService) DeleteAccount(ctx context.Context, actor ports.Actor, username string) error {
	if actor.Role != domain.RoleAdmin || username == actor.Username {
		return domain.ErrForbidden
	}

	if _, err := s.accounts.FindByUsername(ctx, username); err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, username); err != nil {
		return err
	}

	// The credential row is gone; orphaned tenant data is logged, not fatal.
	if err := s.items.DeleteByOwner(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("failed to purge items for deleted account")
	}
	if err := s.categories.DeleteByOwner(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("failed to purge categories for deleted account")
	}

	s.logger.Info().Str("username", username).Str("deleted_by", actor.Username).Msg("account deleted")
	return nil
}
