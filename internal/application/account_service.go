package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lms-auth/internal/domain/entity"
	repo "github.com/oksasatya/go-lms-auth/internal/domain/repository"
	"github.com/oksasatya/go-lms-auth/pkg/helpers"
)

var (
	ErrAccountExists      = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrStoreFailure       = errors.New("account store failure")
)

// EventAccountRegistered is published once an account has been created.
const EventAccountRegistered = "account.registered"

// EventPublisher delivers account events to downstream consumers (the email worker).
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AccountIndex keeps a searchable copy of public account fields.
type AccountIndex interface {
	Index(ctx context.Context, a *entity.Account) error
	Search(ctx context.Context, q string, size int) ([]AccountView, error)
}

// AccountEvent is the JSON payload put on the events queue.
type AccountEvent struct {
	Type       string      `json:"type"`
	AccountID  int64       `json:"account_id"`
	Email      string      `json:"email"`
	Name       string      `json:"name"`
	Role       entity.Role `json:"role"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// AccountView holds the public fields of an account.
type AccountView struct {
	ID    int64       `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  entity.Role `json:"role"`
}

type AccountWithTokens struct {
	AccountView
	helpers.TokenPair
}

type SignupInput struct {
	Email    string
	Name     string
	Password string
	Role     entity.Role // zero value means entity.DefaultRole
}

type AccountService struct {
	Repo   repo.AccountRepository
	Hasher helpers.PasswordHasher
	JWT    *helpers.JWTManager
	Events EventPublisher
	Search AccountIndex
	Logger *logrus.Logger

	dummyOnce   sync.Once
	dummyDigest string
}

// NewAccountService wires the service. events and index are optional.
func NewAccountService(repo repo.AccountRepository, hasher helpers.PasswordHasher, jwt *helpers.JWTManager, events EventPublisher, index AccountIndex, logger *logrus.Logger) *AccountService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &AccountService{
		Repo:   repo,
		Hasher: hasher,
		JWT:    jwt,
		Events: events,
		Search: index,
		Logger: logger,
	}
}

func viewOf(a *entity.Account) AccountView {
	return AccountView{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role}
}

func identityOf(a *entity.Account) helpers.Identity {
	return helpers.Identity{ID: a.ID, Email: a.Email, Role: a.Role}
}

func storeFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreFailure, err)
}

// Signup registers a new account and returns it with a fresh token pair.
// The lookup and the insert are separate store calls; a concurrent signup that slips between them
// is caught by the store's unique constraint and reported as ErrAccountExists as well.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*AccountWithTokens, error) {
	var zero entity.Role
	role := in.Role
	if role == zero {
		role = entity.DefaultRole
	}
	if !role.IsValid() {
		return nil, entity.ErrInvalidRole
	}

	existing, err := s.Repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrAccountExists
	case err != nil && !errors.Is(err, repo.ErrAccountNotFound):
		return nil, storeFailure(err)
	}

	digest, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := &entity.Account{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: digest,
		Role:         role,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrAccountExists
		}
		return nil, storeFailure(err)
	}

	pair, err := s.JWT.IssuePair(identityOf(a))
	if err != nil {
		s.Logger.WithError(err).WithField("account_id", a.ID).Error("issue tokens failed")
		return nil, err
	}

	s.afterSignup(ctx, a)
	s.Logger.WithFields(logrus.Fields{"account_id": a.ID, "role": a.Role.String()}).Info("account registered")

	return &AccountWithTokens{AccountView: viewOf(a), TokenPair: pair}, nil
}

// Login checks credentials and returns the account with a fresh token pair.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (*AccountWithTokens, error) {
	a, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			// spend the same hashing work as a wrong password
			s.Hasher.Verify(password, s.unknownAccountDigest())
			return nil, ErrInvalidCredentials
		}
		return nil, storeFailure(err)
	}
	if a == nil || !s.Hasher.Verify(password, a.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.JWT.IssuePair(identityOf(a))
	if err != nil {
		s.Logger.WithError(err).WithField("account_id", a.ID).Error("issue tokens failed")
		return nil, err
	}
	return &AccountWithTokens{AccountView: viewOf(a), TokenPair: pair}, nil
}

// unknownAccountDigest is a digest no login can match, produced by the configured hasher so
// that verifying against it costs what a real account would.
func (s *AccountService) unknownAccountDigest() string {
	s.dummyOnce.Do(func() {
		d, err := s.Hasher.Hash("unknown-account\x00" + time.Now().String())
		if err != nil {
			s.Logger.WithError(err).Warn("dummy digest failed")
		}
		s.dummyDigest = d
	})
	return s.dummyDigest
}

// Refresh exchanges a refresh token for a new access token. Errors are helpers.ErrTokenInvalid
// or helpers.ErrTokenExpired.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*helpers.AccessGrant, error) {
	grant, err := s.JWT.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// SearchAccounts queries the account index; without an index it returns no hits.
func (s *AccountService) SearchAccounts(ctx context.Context, q string, size int) ([]AccountView, error) {
	if s.Search == nil {
		return []AccountView{}, nil
	}
	return s.Search.Search(ctx, q, size)
}

func (s *AccountService) afterSignup(ctx context.Context, a *entity.Account) {
	if s.Events != nil {
		ev := AccountEvent{
			Type:       EventAccountRegistered,
			AccountID:  a.ID,
			Email:      a.Email,
			Name:       a.Name,
			Role:       a.Role,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.Events.PublishJSON(ctx, ev); err != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Warn("publish account event failed")
		}
	}
	if s.Search != nil {
		if err := s.Search.Index(ctx, a); err != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Warn("index account failed")
		}
	}
}
