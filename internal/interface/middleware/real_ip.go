package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// CtxRealIPKey holds the resolved client IP used by the rate limiter.
const CtxRealIPKey = "real_ip"

// RealIP stores the client IP in the Gin context.
// With trustProxy, CF-Connecting-IP and then the left-most X-Forwarded-For entry win over
// c.ClientIP(). Leave it off unless a proxy strips those headers from client input, otherwise
// callers can pick their own rate-limit bucket.
func RealIP(trustProxy bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ""
		if trustProxy {
			ip = proxiedIP(c.GetHeader("CF-Connecting-IP"), c.GetHeader("X-Forwarded-For"))
		}
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set(CtxRealIPKey, ip)
		c.Next()
	}
}

func proxiedIP(cf, xff string) string {
	if ip := net.ParseIP(strings.TrimSpace(cf)); ip != nil {
		return ip.String()
	}
	first, _, _ := strings.Cut(xff, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
