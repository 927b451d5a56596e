package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-lms-auth/pkg/helpers"
	"github.com/oksasatya/go-lms-auth/pkg/response"
)

// CtxClaimsKey is the gin context key holding *helpers.Claims after JWTAuth.
const CtxClaimsKey = "claims"

type claimsCtxKey struct{}

// AccessTokenVerifier is satisfied by *helpers.JWTManager.
type AccessTokenVerifier interface {
	VerifyAccess(token string) (*helpers.Claims, error)
}

// JWTAuth reads the bearer token from the Authorization header, validates it as an access token
// and injects the claims into the gin context and the request context.
// A missing or malformed header yields 401; a token that fails verification yields 403.
func JWTAuth(jwt AccessTokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "access token required", nil)
			return
		}
		claims, err := jwt.VerifyAccess(token)
		if err != nil {
			response.Abort(c, http.StatusForbidden, err.Error(), nil)
			return
		}
		c.Set(CtxClaimsKey, claims)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), claimsCtxKey{}, claims))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// ClaimsFromGin returns the claims set by JWTAuth, if any.
func ClaimsFromGin(c *gin.Context) (*helpers.Claims, bool) {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*helpers.Claims)
	return claims, ok && claims != nil
}

// ClaimsFromContext returns the claims JWTAuth attached to the request context.
func ClaimsFromContext(ctx context.Context) (*helpers.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey{}).(*helpers.Claims)
	return claims, ok && claims != nil
}
