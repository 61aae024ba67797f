package models

import (
	"time"

	"trailporter/internal/domain"
)

// User is an account. Username is a normalized (lower-cased, trimmed) email
// address; it doubles as the login identifier.
type User struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Role         domain.Role `json:"role"`
}

// Session is a server-side login session referenced by the `session` cookie.
// Expired rows are deleted lazily on next use.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PasswordResetToken authorizes a single password change until it expires.
// Consumption removes every outstanding token of the same user.
type PasswordResetToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
