// Package memory provides an in-process account store for local development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/go-lms-auth/internal/domain/entity"
	"github.com/oksasatya/go-lms-auth/internal/domain/repository"
)

type AccountRepository struct {
	mu      sync.RWMutex
	byEmail map[string]entity.Account
	nextID  int64
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{byEmail: make(map[string]entity.Account)}
}

func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return &a, nil
}

func (r *AccountRepository) Create(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[a.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	r.nextID++
	now := time.Now().UTC()
	a.ID = r.nextID
	a.CreatedAt = now
	a.UpdatedAt = now
	r.byEmail[a.Email] = *a
	return nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
