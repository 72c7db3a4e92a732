package domain

import (
	"errors"
	"time"
)

const (
	RoleMember     = "member"
	RoleSuperAdmin = "super_admin"
)

var (
	// ErrValidation marks malformed input. Wrapped errors carry the specific
	// message shown to the client.
	ErrValidation = errors.New("invalid input")

	// ErrMissingCredentials marks a login request with an empty login or
	// password field. Surfaced with a specific message.
	ErrMissingCredentials = errors.New("login and password are required")

	// ErrInvalidCredentials covers both "unknown login" and "wrong password"
	// so responses never reveal whether a login exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrAccessDenied = errors.New("access denied")
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("login already taken")

	// ErrStorage wraps credential file failures (unreadable, corrupt content,
	// write error). Rendered as a generic internal error.
	ErrStorage = errors.New("credential storage failure")

	ErrSessionNotFound = errors.New("session not found")
)

// User models an account stored in the credential file.
type User struct {
	ID           string    `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
