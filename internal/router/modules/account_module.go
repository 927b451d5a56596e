package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-lms-auth/internal/domain/entity"
	handlers "github.com/oksasatya/go-lms-auth/internal/interface/http"
	"github.com/oksasatya/go-lms-auth/internal/interface/middleware"
)

// AccountModule wires protected account routes.
// Any role: GET /api/accounts/me
// Admin:    GET /api/accounts/search
type AccountModule struct {
	Handler *handlers.AccountHandler
	JWT     middleware.AccessTokenVerifier
	RDB     *redis.Client
}

func NewAccountModule(h *handlers.AccountHandler, jwt middleware.AccessTokenVerifier, rdb *redis.Client) *AccountModule {
	return &AccountModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	accounts.Use(middleware.JWTAuth(m.JWT))
	accounts.Use(middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByAccount(), nil))
	{
		accounts.GET("/me", m.Handler.Me)
		accounts.GET("/search", middleware.RequireRoles(entity.RoleAdmin), m.Handler.Search)
	}
}
