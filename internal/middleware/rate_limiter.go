package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RateLimiterMiddleware limits requests per client IP.
func (m Middleware) RateLimiterMiddleware(ctx *gin.Context) {
	if m.rateLimiter == nil {
		ctx.Next()
		return
	}

	ip := ctx.ClientIP()
	if ip == "" {
		ip = "unknown"
	}

	allowed, retryAfter := m.rateLimiter.Allow(ctx.Request.Context(), ip)
	if !allowed {
		ctx.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		return
	}

	ctx.Next()
}
