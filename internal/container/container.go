package container

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lms-auth/config"
	"github.com/oksasatya/go-lms-auth/internal/application"
	repo "github.com/oksasatya/go-lms-auth/internal/domain/repository"
	"github.com/oksasatya/go-lms-auth/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-lms-auth/internal/infrastructure/postgres"
	"github.com/oksasatya/go-lms-auth/internal/infrastructure/search"
	"github.com/oksasatya/go-lms-auth/pkg/helpers"
)

// Container carries the components constructed once at startup.
// cmd/main.go fills it and hands it to the router; nothing reads it through globals.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	PGPool *pgxpool.Pool // nil when the in-memory store is used
	Redis  *redis.Client // nil disables rate limiting

	JWT      *helpers.JWTManager
	Hasher   helpers.PasswordHasher
	Accounts repo.AccountRepository

	// Optional signup side effects.
	Events application.EventPublisher
	Index  application.AccountIndex

	publisher *helpers.RabbitPublisher
}

// AccountService builds the account service from the container's components.
func (c *Container) AccountService() *application.AccountService {
	return application.NewAccountService(c.Accounts, c.Hasher, c.JWT, c.Events, c.Index, c.Logger)
}

// Build connects the store and the optional infrastructure described by cfg.
// Postgres and configuration errors are fatal; Redis, RabbitMQ and Elasticsearch degrade to disabled
// with a warning so the auth endpoints keep working without them.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	hasher, err := helpers.NewPasswordHasher(cfg.PasswordHasher)
	if err != nil {
		return nil, err
	}
	c.Hasher = hasher
	c.JWT = helpers.NewJWTManager(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL, clockwork.NewRealClock())

	switch cfg.StoreDriver {
	case "memory":
		logger.Warn("using in-memory account store; accounts are lost on restart")
		c.Accounts = memory.NewAccountRepository()
	default:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		c.PGPool = pool
		c.Accounts = pginfra.NewAccountRepository(pool)
	}

	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			// the limiter fails open, keep the client so it recovers when redis comes back
			logger.WithError(err).Warn("redis unreachable; rate limiting fails open")
		}
		c.Redis = rdb
	}

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; account events disabled")
		} else {
			c.publisher = pub
			c.Events = pub
		}
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch client init failed; account search disabled")
		} else {
			idx := search.NewAccountIndex(es, cfg.ESAccountsIndex, logger)
			if err := idx.EnsureIndex(ctx); err != nil {
				logger.WithError(err).Warn("elasticsearch unavailable; account search disabled")
			} else {
				c.Index = idx
			}
		}
	}

	return c, nil
}

// Close releases connections opened by Build.
func (c *Container) Close() {
	c.publisher.Close()
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}
