package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInviteCode  = errors.New("invalid invite code")
	ErrMissingField       = errors.New("missing required field")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrAccountNotFound    = errors.New("account not found")

	ErrEmptyName        = errors.New("item name must not be empty")
	ErrItemNotFound     = errors.New("item not found")
	ErrUnsupportedImage = errors.New("unsupported image format")

	ErrEmptyLabel       = errors.New("category label must not be empty")
	ErrInvalidParent    = errors.New("unknown parent label")
	ErrDuplicateLabel   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")

	ErrForbidden = errors.New("access forbidden")
)
