package entity

import (
	"time"
)

// Account is the aggregate root for the account domain.
// PasswordHash holds the digest produced by the configured password hasher, never the plaintext.
type Account struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
