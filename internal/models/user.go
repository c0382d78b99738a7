package models

import (
	"time"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsActive     bool
	IsSuperuser  bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthToken is one opaque bearer token session. Only the SHA-256 digest of
// the secret is persisted; the plaintext is handed to the client exactly once.
type AuthToken struct {
	ID        string
	UserID    string
	Digest    string
	CreatedAt time.Time
}

// UserProfile is owned by exactly one user and is never visible to others.
type UserProfile struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
