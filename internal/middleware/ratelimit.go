package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	pkgredis "github.com/nilehomes/landing/internal/pkg/redis"
	"github.com/nilehomes/landing/internal/pkg/response"
	"go.uber.org/zap"
)

const rateLimitKeyPrefix = "landing:rate_limit:"

// RateLimit allows at most limit requests per client IP per window for the given scope.
// A nil client or non-positive limit disables the check. Redis failures let the request through.
func RateLimit(rc *pkgredis.Client, log *zap.Logger, scope string, limit int, window time.Duration) gin.HandlerFunc {
	if rc == nil || limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		count, err := rc.Hit(c.Request.Context(), rateLimitKeyPrefix+scope+":"+ip, window, time.Now())
		if err != nil {
			log.Warn("rate limit check failed", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			response.TooManyRequests(c, "Too many requests, please try again later")
			return
		}
		c.Next()
	}
}
