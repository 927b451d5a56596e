package router

import (
	"context"

	"github.com/oksasatya/go-lms-auth/internal/container"
	pginfra "github.com/oksasatya/go-lms-auth/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-lms-auth/internal/interface/http"
	"github.com/oksasatya/go-lms-auth/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, c *container.Container) {
	svc := c.AccountService()

	var dbPing handlers.Pinger
	if c.PGPool != nil {
		pool := c.PGPool
		dbPing = func(ctx context.Context) error { return pginfra.Check(ctx, pool) }
	}

	authLimit := 0
	debug := false
	if c.Config != nil {
		authLimit = c.Config.AuthRateLimit
		debug = c.Config.DebugMetricsEnabled
	}

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(dbPing)))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc, c.Logger), c.Redis, authLimit))
	r.Add(modules.NewAccountModule(handlers.NewAccountHandler(svc, c.Logger), c.JWT, c.Redis))
	if debug {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
