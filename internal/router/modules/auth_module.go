package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-lms-auth/internal/interface/http"
	"github.com/oksasatya/go-lms-auth/internal/interface/middleware"
)

// AuthModule wires the public credential endpoints.
// Public: POST /api/auth/signup, POST /api/auth/login, POST /api/auth/refresh
type AuthModule struct {
	Handler *handlers.AuthHandler
	RDB     *redis.Client
	Limit   int // requests per minute per IP and path
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client, limit int) *AuthModule {
	return &AuthModule{Handler: h, RDB: rdb, Limit: limit}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(m.RDB, m.Limit, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(m.RDB, m.Limit*6, time.Minute, middleware.KeyByIP(), nil)

	auth := rg.Group("/auth")
	auth.POST("/signup", limiter, m.Handler.Signup)
	auth.POST("/login", limiter, m.Handler.Login)
	auth.POST("/refresh", refreshLimiter, m.Handler.Refresh)
}
