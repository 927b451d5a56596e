package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/oksasatya/go-lms-auth/internal/domain/entity"
)

// TokenKind separates short-lived access tokens from long-lived refresh tokens.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

const (
	DefaultAccessTTL  = time.Hour
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Both errors carry the same message so callers cannot tell a forged token from a stale one.
// Use errors.Is to distinguish them internally.
var (
	ErrTokenInvalid = errors.New("invalid or expired token")
	ErrTokenExpired = errors.New("invalid or expired token")
)

// Identity is the subject a token is issued for.
type Identity struct {
	ID    int64
	Email string
	Role  entity.Role
}

// Claims is the payload signed into every token.
type Claims struct {
	AccountID int64       `json:"id"`
	Email     string      `json:"email"`
	Role      entity.Role `json:"role"`
	Kind      TokenKind   `json:"typ"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() Identity {
	return Identity{ID: c.AccountID, Email: c.Email, Role: c.Role}
}

// TokenPair is returned on signup and login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

// AccessGrant is returned when a refresh token is exchanged for a new access token.
type AccessGrant struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

// JWTManager handles generation and validation of HS256 tokens signed with a single secret.
type JWTManager struct {
	secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	clock      clockwork.Clock
}

// NewJWTManager builds a manager. Zero TTLs fall back to one hour and seven days; a nil clock
// uses wall time.
func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration, clock clockwork.Clock) *JWTManager {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &JWTManager{
		secret:     []byte(secret),
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		clock:      clock,
	}
}

// ExpiresIn is the access token lifetime in seconds.
func (m *JWTManager) ExpiresIn() int {
	return int(m.AccessTTL / time.Second)
}

func (m *JWTManager) IssueAccess(id Identity) (string, error) {
	return m.issue(id, AccessToken, m.AccessTTL)
}

// IssueRefresh carries the role as well, so Refresh can mint an access token without a store lookup.
func (m *JWTManager) IssueRefresh(id Identity) (string, error) {
	return m.issue(id, RefreshToken, m.RefreshTTL)
}

func (m *JWTManager) IssuePair(id Identity) (TokenPair, error) {
	access, err := m.IssueAccess(id)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := m.IssueRefresh(id)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: m.ExpiresIn()}, nil
}

func (m *JWTManager) issue(id Identity, kind TokenKind, ttl time.Duration) (string, error) {
	if !id.Role.IsValid() {
		return "", entity.ErrInvalidRole
	}
	now := m.clock.Now()
	claims := &Claims{
		AccountID: id.ID,
		Email:     id.Email,
		Role:      id.Role,
		Kind:      kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

func (m *JWTManager) VerifyAccess(tokenStr string) (*Claims, error) {
	return m.Verify(tokenStr, AccessToken)
}

func (m *JWTManager) VerifyRefresh(tokenStr string) (*Claims, error) {
	return m.Verify(tokenStr, RefreshToken)
}

// Verify checks signature, expiry and kind. It returns ErrTokenExpired once the clock has passed
// the embedded expiry and ErrTokenInvalid for every other failure.
func (m *JWTManager) Verify(tokenStr string, kind TokenKind) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tkn.Valid || claims.Kind != kind || !claims.Role.IsValid() {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Refresh exchanges a valid refresh token for a new access token with the same identity and role.
func (m *JWTManager) Refresh(refreshToken string) (AccessGrant, error) {
	claims, err := m.VerifyRefresh(refreshToken)
	if err != nil {
		return AccessGrant{}, err
	}
	access, err := m.IssueAccess(claims.Identity())
	if err != nil {
		return AccessGrant{}, err
	}
	return AccessGrant{AccessToken: access, ExpiresIn: m.ExpiresIn()}, nil
}
