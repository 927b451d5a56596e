package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, DevJWTSecret, cfg.JWTSecret)
	assert.True(t, cfg.UsesDevSecret())
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, "sha256", cfg.PasswordHasher)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("HTTP_LOG_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()
	assert.Equal(t, "s3cr3t", cfg.JWTSecret)
	assert.False(t, cfg.UsesDevSecret())
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.True(t, cfg.HTTPLogEnabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "soon")
	t.Setenv("REDIS_DB", "x")
	t.Setenv("MAIL_SEND_ENABLED", "maybe")

	cfg := Load()
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.True(t, cfg.MailSendEnabled)
}

func TestValidate_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "real-secret"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_NonPositiveTTL(t *testing.T) {
	cfg := Load()
	cfg.AccessTTL = 0
	assert.Error(t, cfg.Validate())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}

func TestValidate_StoreDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("APP_ENV", "development")

	cfg := Load()
	assert.NoError(t, cfg.Validate())

	cfg.Env = "production"
	cfg.JWTSecret = "real-secret"
	assert.Error(t, cfg.Validate())

	cfg.Env = "development"
	cfg.StoreDriver = "sqlite"
	assert.Error(t, cfg.Validate())
}
