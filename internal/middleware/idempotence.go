package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	pkgredis "github.com/nilehomes/landing/internal/pkg/redis"
	"github.com/nilehomes/landing/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	idempotenceKeyPrefix = "landing:idempotence:"
	// DefaultIdempotenceTTL is how long an identical submission is refused.
	DefaultIdempotenceTTL = 60 * time.Second
)

// Idempotence refuses a repeat of the same body from the same client IP within ttl with 409.
// The key is released when the first request fails, so corrected retries go through.
// A nil client disables the check and Redis failures let the request through.
func Idempotence(rc *pkgredis.Client, log *zap.Logger, ttl time.Duration) gin.HandlerFunc {
	if rc == nil || ttl <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		key, err := idempotenceKey(c)
		if err != nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		claimed, state, err := rc.Claim(ctx, key, ttl)
		if err != nil {
			log.Warn("idempotence check failed", zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			msg := "This request was already received, please wait before sending it again"
			if state == pkgredis.StateInFlight {
				msg = "An identical request is still being processed"
			}
			response.Conflict(c, msg)
			return
		}

		c.Next()

		if status := c.Writer.Status(); status >= http.StatusOK && status < http.StatusMultipleChoices {
			err = rc.Complete(ctx, key)
		} else {
			err = rc.Release(ctx, key)
		}
		if err != nil {
			log.Warn("idempotence update failed", zap.Error(err))
		}
	}
}

// idempotenceKey hashes method, path, client IP and body. The body is restored for the handler.
func idempotenceKey(c *gin.Context) (string, error) {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return "", err
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}

	h := sha256.New()
	for _, part := range []string{c.Request.Method, c.Request.URL.Path, c.ClientIP()} {
		h.Write([]byte(part))
		h.Write([]byte{'|'})
	}
	h.Write(body)
	return idempotenceKeyPrefix + hex.EncodeToString(h.Sum(nil)), nil
}
