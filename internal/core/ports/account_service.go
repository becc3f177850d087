package ports

import (
	"context"

	"github.com/tidystash/inventory-system/internal/core/domain"
)

// Actor identifies the authenticated caller of an operation, as extracted from
// the session token by the transport layer.
type Actor struct {
	Username string
	Role     string
}

// AccountService exposes the administrator-only account operations.
// Deleting an account also purges its per-user item store.
type AccountService interface {
	ListAccounts(ctx context.Context, actor Actor) ([]*domain.Account, error)
	DeleteAccount(ctx context.Context, actor Actor, username string) error
}
