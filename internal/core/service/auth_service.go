package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tidystash/inventory-system/internal/core/domain"
	"github.com/tidystash/inventory-system/internal/core/ports"
)

// AuthService implements registration, login, and invite-gated password resets.
type AuthService struct {
	repo          ports.AccountRepository
	jwtSecret     string
	inviteCode    string
	adminUsername string
	tokenTTL      time.Duration
}

func NewAuthService(repo ports.AccountRepository, jwtSecret, inviteCode, adminUsername string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:          repo,
		jwtSecret:     jwtSecret,
		inviteCode:    inviteCode,
		adminUsername: adminUsername,
		tokenTTL:      tokenTTL,
	}
}

// Register creates a new account, gated by the shared invite code.
func (s *AuthService) Register(ctx context.Context, username, password, inviteCode string) (*domain.Account, error) {
	if inviteCode != s.inviteCode {
		return nil, domain.ErrInvalidInviteCode
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrMissingField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	created.Role = s.roleFor(created.Username)
	return created, nil
}

// Login verifies the credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	account.Role = s.roleFor(account.Username)
	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// ResetPassword overwrites the stored hash for username, gated by the invite code.
func (s *AuthService) ResetPassword(ctx context.Context, username, newPassword, inviteCode string) error {
	if inviteCode != s.inviteCode {
		return domain.ErrInvalidInviteCode
	}
	username = strings.TrimSpace(username)
	if username == "" || newPassword == "" {
		return domain.ErrMissingField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePasswordHash(ctx, username, string(hash))
}

// IsAdmin reports whether username is the configured administrator identity.
func (s *AuthService) IsAdmin(username string) bool {
	return username != "" && username == s.adminUsername
}

func (s *AuthService) roleFor(username string) string {
	if s.IsAdmin(username) {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}

func (s *AuthService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"username": account.Username,
		"role":     account.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
