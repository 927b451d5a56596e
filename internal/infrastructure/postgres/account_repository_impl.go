package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-lms-auth/internal/domain/entity"
	"github.com/oksasatya/go-lms-auth/internal/domain/repository"
)

const uniqueViolation = "23505"

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (email, name, password_hash, role)
		VALUES ($1, $2, $3, $4::account_role)
		RETURNING id, created_at, updated_at
	`, a.Email, a.Name, a.PasswordHash, a.Role.String())

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	a := &entity.Account{}
	var role string

	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, role::text, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`, email)

	if err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &role,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrAccountNotFound
		}
		return nil, err
	}

	parsed, err := entity.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("account %d: %w", a.ID, err)
	}
	a.Role = parsed
	return a, nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
