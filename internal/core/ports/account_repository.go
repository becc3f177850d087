package ports

import (
	"context"

	"github.com/tidystash/inventory-system/internal/core/domain"
)

// AccountRepository defines the interface for credential persistence.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	UpdatePasswordHash(ctx context.Context, username, passwordHash string) error
	List(ctx context.Context) ([]*domain.Account, error)
	Delete(ctx context.Context, username string) error
}
