package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"trailporter/internal/ratelimit"
)

// ClientID identifies the caller for rate limiting: first hop of
// X-Forwarded-For, then X-Real-IP, then a shared "unknown" bucket. Behind a
// trusted proxy this is the real client; without one it is spoofable, which
// is accepted for an advisory limit.
func ClientID(c *gin.Context) string {
	if xff := c.Request.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if rip := strings.TrimSpace(c.Request.Header.Get("X-Real-IP")); rip != "" {
		return rip
	}
	return "unknown"
}

// RateLimit rejects clients over their request budget with 429.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(ClientID(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, retry later"})
			return
		}
		c.Next()
	}
}
