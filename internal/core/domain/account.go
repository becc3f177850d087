package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Account models a registered user identity. Role is derived at login time from
// the configured administrator username and is never persisted.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
