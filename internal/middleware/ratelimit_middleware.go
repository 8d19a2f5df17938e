package middleware

import (
	"context"
	"net/http"
	"strconv"

	"account-service/internal/redis"
	"account-service/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// LoginLimiter is satisfied by *redis.RateLimiter.
type LoginLimiter interface {
	AllowLogin(ctx context.Context, ip string) (*redis.RateLimitResult, error)
}

// LoginRateLimitMiddleware limits login attempts per client IP.
func LoginRateLimitMiddleware(limiter LoginLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := limiter.AllowLogin(c.Request.Context(), c.ClientIP())
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, httpdto.NewErrorResponse("rate limit error"))
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("rate limit exceeded"))
			return
		}

		c.Next()
	}
}

// setRateLimitHeaders sets standard rate limit response headers
func setRateLimitHeaders(c *gin.Context, result *redis.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}
