package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-lms-auth/internal/domain/entity"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("email already registered")
)

// AccountRepository defines the persistence operations the account service relies on.
// Implementations must enforce email uniqueness themselves; the service does not lock.
type AccountRepository interface {
	// FindByEmail returns ErrAccountNotFound when no account has exactly this email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	// Create assigns ID and timestamps on success and returns ErrDuplicateEmail on a uniqueness violation.
	Create(ctx context.Context, a *entity.Account) error
}
