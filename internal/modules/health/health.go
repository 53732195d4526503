package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const pingTimeout = 2 * time.Second

// Pinger is an optional dependency whose failure degrades the service.
type Pinger interface {
	Ping(ctx context.Context) error
}

type response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  bool      `json:"database"`
	Redis     *bool     `json:"redis,omitempty"`
}

// RegisterRoutes mounts GET /health. redis may be nil when rate limiting is off.
func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, redis Pinger) {
	rg.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		resp := response{Status: "ok", Timestamp: time.Now().UTC(), Database: pingDB(ctx, db)}
		code := http.StatusOK
		if !resp.Database {
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
		if redis != nil {
			ok := redis.Ping(ctx) == nil
			resp.Redis = &ok
			if !ok {
				resp.Status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		c.JSON(code, resp)
	})
}

func pingDB(ctx context.Context, db *gorm.DB) bool {
	sqlDB, err := db.DB()
	return err == nil && sqlDB.PingContext(ctx) == nil
}
