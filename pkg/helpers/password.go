package helpers

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns a plaintext password into a digest that can be stored and compared later.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// SHA256Hasher produces an unsalted hex SHA-256 digest.
// It is deterministic and never fails. It has no salt or cost factor, so prefer BcryptHasher
// wherever existing digests do not have to stay readable.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(plain string) (string, error) {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(plain, digest string) bool {
	sum, _ := h.Hash(plain)
	return subtle.ConstantTimeCompare([]byte(sum), []byte(digest)) == 1
}

// BcryptHasher hashes the plain text password using bcrypt.
// bcrypt reads at most 72 bytes, so the password is first reduced to a base64 SHA-256
// (44 bytes); any length hashes and two long passwords sharing a prefix stay distinct.
type BcryptHasher struct {
	Cost int
}

func bcryptInput(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword(bcryptInput(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), bcryptInput(plain)) == nil
}

// NewPasswordHasher picks a hasher by name ("sha256" or "bcrypt").
func NewPasswordHasher(name string) (PasswordHasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sha256":
		return SHA256Hasher{}, nil
	case "bcrypt":
		return BcryptHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}
