package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-lms-auth/internal/domain/entity"
	"github.com/oksasatya/go-lms-auth/pkg/response"
)

// RequireRoles allows the request through only when the authenticated role is in roles.
// It must run after JWTAuth; without claims it answers 401.
func RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	allowed := slices.Clone(roles)
	msg := "access denied. required roles: " + entity.JoinRoles(allowed)
	return func(c *gin.Context) {
		claims, ok := ClaimsFromGin(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		if !slices.Contains(allowed, claims.Role) {
			response.Abort(c, http.StatusForbidden, msg, nil)
			return
		}
		c.Next()
	}
}
