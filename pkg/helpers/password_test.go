package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSHA256Hasher_KnownDigest(t *testing.T) {
	h := SHA256Hasher{}

	digest, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.Equal(t, "fcf730b6d95236ecd3c9fc2d92d7b6b2bb061514961aec041d6c7a7192f592e4", digest)

	again, _ := h.Hash("secret123")
	assert.Equal(t, digest, again, "hash must be deterministic")
}

func TestSHA256Hasher_Verify(t *testing.T) {
	h := SHA256Hasher{}
	cases := []string{"", "a", "secret123", "pässwörd", "with spaces and\ttabs"}

	for _, p := range cases {
		digest, err := h.Hash(p)
		require.NoError(t, err)
		assert.True(t, h.Verify(p, digest), "verify(%q, hash(%q))", p, p)
	}

	for i, p1 := range cases {
		for j, p2 := range cases {
			if i == j {
				continue
			}
			digest, _ := h.Hash(p2)
			assert.False(t, h.Verify(p1, digest), "verify(%q, hash(%q))", p1, p2)
		}
	}
}

func TestSHA256Hasher_VerifyGarbageDigest(t *testing.T) {
	h := SHA256Hasher{}
	assert.False(t, h.Verify("secret123", ""))
	assert.False(t, h.Verify("secret123", "not-a-digest"))
}

func TestBcryptHasher_Verify(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	digest, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", digest)
	assert.True(t, h.Verify("secret123", digest))
	assert.False(t, h.Verify("secret124", digest))

	other, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, digest, other, "bcrypt digests are salted")
}

func TestBcryptHasher_LongPasswords(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}
	long := strings.Repeat("p", 73)

	digest, err := h.Hash(long)
	require.NoError(t, err)
	assert.True(t, h.Verify(long, digest))

	// same first 72 bytes, different tail
	assert.False(t, h.Verify(strings.Repeat("p", 72)+"q", digest))
	assert.False(t, h.Verify(strings.Repeat("p", 72), digest))

	huge := strings.Repeat("correct horse battery staple ", 40)
	digest, err = h.Hash(huge)
	require.NoError(t, err)
	assert.True(t, h.Verify(huge, digest))
}

func TestNewPasswordHasher(t *testing.T) {
	h, err := NewPasswordHasher("")
	require.NoError(t, err)
	assert.IsType(t, SHA256Hasher{}, h)

	h, err = NewPasswordHasher("BCRYPT")
	require.NoError(t, err)
	assert.IsType(t, BcryptHasher{}, h)

	_, err = NewPasswordHasher("md5")
	assert.Error(t, err)
}
