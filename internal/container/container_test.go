package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-lms-auth/config"
	"github.com/oksasatya/go-lms-auth/internal/application"
	"github.com/oksasatya/go-lms-auth/internal/infrastructure/memory"
	"github.com/oksasatya/go-lms-auth/pkg/helpers"
)

func memoryConfig() *config.Config {
	return &config.Config{
		StoreDriver:    "memory",
		JWTSecret:      "container-secret",
		PasswordHasher: "bcrypt",
	}
}

func TestBuild_MemoryWithoutOptionalInfra(t *testing.T) {
	c, err := Build(context.Background(), memoryConfig(), helpers.NopLogger())
	require.NoError(t, err)
	defer c.Close()

	assert.IsType(t, &memory.AccountRepository{}, c.Accounts)
	assert.IsType(t, helpers.BcryptHasher{}, c.Hasher)
	assert.Nil(t, c.PGPool)
	assert.Nil(t, c.Redis)
	assert.Nil(t, c.Events)
	assert.Nil(t, c.Index)
	assert.Equal(t, helpers.DefaultAccessTTL, c.JWT.AccessTTL)

	res, err := c.AccountService().Signup(context.Background(), application.SignupInput{
		Email: "a@x.com", Name: "A", Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
}

func TestBuild_UnknownHasher(t *testing.T) {
	cfg := memoryConfig()
	cfg.PasswordHasher = "md5"
	_, err := Build(context.Background(), cfg, helpers.NopLogger())
	assert.Error(t, err)
}
