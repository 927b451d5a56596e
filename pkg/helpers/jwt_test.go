package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-lms-auth/internal/domain/entity"
)

var testIdentity = Identity{ID: 42, Email: "a@x.com", Role: entity.RoleInstructor}

func newTestManager(t *testing.T) (*JWTManager, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))
	return NewJWTManager("test-secret", 0, 0, clock), clock
}

func TestJWTManager_AccessRoundTrip(t *testing.T) {
	m, clock := newTestManager(t)

	tok, err := m.IssueAccess(testIdentity)
	require.NoError(t, err)

	claims, err := m.VerifyAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, claims.Identity())
	assert.Equal(t, AccessToken, claims.Kind)
	assert.WithinDuration(t, clock.Now(), claims.IssuedAt.Time, 0)
	assert.WithinDuration(t, clock.Now().Add(time.Hour), claims.ExpiresAt.Time, 0)
}

func TestJWTManager_RefreshRoundTrip(t *testing.T) {
	m, clock := newTestManager(t)

	tok, err := m.IssueRefresh(testIdentity)
	require.NoError(t, err)

	claims, err := m.VerifyRefresh(tok)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, claims.Identity())
	assert.Equal(t, RefreshToken, claims.Kind)
	assert.WithinDuration(t, clock.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, 0)
}

func TestJWTManager_AccessExpiry(t *testing.T) {
	m, clock := newTestManager(t)

	tok, err := m.IssueAccess(testIdentity)
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	_, err = m.VerifyAccess(tok)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = m.VerifyAccess(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTManager_RefreshExpiry(t *testing.T) {
	m, clock := newTestManager(t)

	tok, err := m.IssueRefresh(testIdentity)
	require.NoError(t, err)

	clock.Advance(6 * 24 * time.Hour)
	_, err = m.VerifyRefresh(tok)
	require.NoError(t, err)

	clock.Advance(24*time.Hour + time.Second)
	_, err = m.VerifyRefresh(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	m, clock := newTestManager(t)
	other := NewJWTManager("other-secret", 0, 0, clock)

	tok, err := other.IssueAccess(testIdentity)
	require.NoError(t, err)

	_, err = m.VerifyAccess(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestJWTManager_KindIsEnforced(t *testing.T) {
	m, _ := newTestManager(t)

	access, err := m.IssueAccess(testIdentity)
	require.NoError(t, err)
	refresh, err := m.IssueRefresh(testIdentity)
	require.NoError(t, err)

	_, err = m.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrTokenInvalid, "access token must not pass as refresh token")

	_, err = m.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid, "refresh token must not pass as access token")

	_, err = m.Refresh(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTManager_MalformedToken(t *testing.T) {
	m, _ := newTestManager(t)

	for _, tok := range []string{"", "not.a.jwt", "abc"} {
		_, err := m.VerifyAccess(tok)
		assert.ErrorIs(t, err, ErrTokenInvalid, tok)
	}
}

func TestJWTManager_RejectsOtherAlgorithms(t *testing.T) {
	m, clock := newTestManager(t)

	claims := &Claims{
		AccountID: 1,
		Email:     "a@x.com",
		Role:      entity.RoleAdmin,
		Kind:      AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(clock.Now()),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = m.VerifyAccess(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.VerifyAccess(unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTManager_RequiresExpiry(t *testing.T) {
	m, _ := newTestManager(t)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": 1, "email": "a@x.com", "role": "Admin", "typ": "access",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.VerifyAccess(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTManager_ErrorMessagesMatch(t *testing.T) {
	assert.Equal(t, ErrTokenInvalid.Error(), ErrTokenExpired.Error())
}

func TestJWTManager_IssuePair(t *testing.T) {
	m, _ := newTestManager(t)

	pair, err := m.IssuePair(testIdentity)
	require.NoError(t, err)
	assert.Equal(t, 3600, pair.ExpiresIn)

	access, err := m.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	refresh, err := m.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, access.Identity(), refresh.Identity())
}

func TestJWTManager_IssueRejectsInvalidRole(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.IssueAccess(Identity{ID: 1, Email: "a@x.com"})
	assert.ErrorIs(t, err, entity.ErrInvalidRole)
}

func TestJWTManager_Refresh(t *testing.T) {
	m, clock := newTestManager(t)

	refresh, err := m.IssueRefresh(testIdentity)
	require.NoError(t, err)

	clock.Advance(3 * time.Hour)
	grant, err := m.Refresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, 3600, grant.ExpiresIn)

	claims, err := m.VerifyAccess(grant.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, claims.Identity())
	assert.WithinDuration(t, clock.Now().Add(time.Hour), claims.ExpiresAt.Time, 0)
}

func TestJWTManager_RefreshWithoutRoleClaim(t *testing.T) {
	m, clock := newTestManager(t)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    1,
		"email": "a@x.com",
		"typ":   "refresh",
		"iat":   clock.Now().Unix(),
		"exp":   clock.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Refresh(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTManager_CustomTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewJWTManager("s", 15*time.Minute, 24*time.Hour, clock)
	assert.Equal(t, 900, m.ExpiresIn())
}
