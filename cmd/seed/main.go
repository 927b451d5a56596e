package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-lms-auth/config"
	"github.com/oksasatya/go-lms-auth/internal/application"
	"github.com/oksasatya/go-lms-auth/internal/container"
	"github.com/oksasatya/go-lms-auth/internal/domain/entity"
	"github.com/oksasatya/go-lms-auth/pkg/helpers"
)

// seed creates the initial Admin account through the regular signup path.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	if cfg.SeedAdminPassword == "" {
		logger.Fatal("SEED_ADMIN_PASSWORD must be set")
	}
	if cfg.StoreDriver == "memory" {
		logger.Fatal("seeding the in-memory store has no effect; set STORE_DRIVER=postgres")
	}

	ctx := context.Background()
	c, err := container.Build(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize dependencies")
	}
	defer c.Close()

	res, err := c.AccountService().Signup(ctx, application.SignupInput{
		Email:    cfg.SeedAdminEmail,
		Name:     cfg.SeedAdminName,
		Password: cfg.SeedAdminPassword,
		Role:     entity.RoleAdmin,
	})
	switch {
	case errors.Is(err, application.ErrAccountExists):
		fmt.Printf("admin already present: email=%s\n", cfg.SeedAdminEmail)
	case err != nil:
		logger.WithError(err).Fatal("failed to seed admin")
	default:
		fmt.Printf("seeded admin: id=%d email=%s name=%s\n", res.ID, res.Email, res.Name)
	}
}
