package ports

import (
	"context"

	"github.com/tidystash/inventory-system/internal/core/domain"
)

// AuthService covers registration, login, and invite-gated password resets.
type AuthService interface {
	Register(ctx context.Context, username, password, inviteCode string) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (string, *domain.Account, error)
	ResetPassword(ctx context.Context, username, newPassword, inviteCode string) error
}
