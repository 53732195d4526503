package app

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nilehomes/landing/internal/middleware"
	"github.com/nilehomes/landing/internal/modules/auth"
	"github.com/nilehomes/landing/internal/modules/file"
	"github.com/nilehomes/landing/internal/modules/health"
	"github.com/nilehomes/landing/internal/modules/lead"
	"github.com/nilehomes/landing/internal/modules/project"
	"github.com/nilehomes/landing/internal/pkg/response"
	"github.com/nilehomes/landing/internal/pkg/storage"
)

const apiPrefix = "/api"

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	authMW := middleware.Auth(a.signer)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.NotFound(c, "Not found")
	})

	if local, ok := a.store.(*storage.Local); ok {
		r.Static(staticMount(a.cfg.Storage.PublicBaseURL), local.Dir())
	}

	if a.metrics != nil {
		r.GET(a.cfg.Metrics.Path, gin.WrapH(a.metrics.Handler()))
	}

	api := r.Group(apiPrefix)

	var pinger health.Pinger
	if a.redis != nil {
		pinger = a.redis
	}
	health.RegisterRoutes(api, db, pinger)

	leadGuard := middleware.RateLimit(a.redis, a.logger, "leads", a.cfg.RateLimit.LeadsPerMinute, time.Minute)
	leadOnce := middleware.Idempotence(a.redis, a.logger, middleware.DefaultIdempotenceTTL)
	loginGuard := middleware.RateLimit(a.redis, a.logger, "login", a.cfg.RateLimit.LoginsPerMinute, time.Minute)

	project.NewHandler(project.NewService(db)).RegisterRoutes(api, authMW)
	lead.NewHandler(lead.NewService(db), a.metrics).RegisterRoutes(api, authMW, leadGuard, leadOnce)
	auth.NewHandler(auth.NewService(db, a.signer)).RegisterRoutes(api.Group("/admin"), authMW, loginGuard)
	file.NewHandler(a.store, a.cfg.MaxUploadBytes(), a.cfg.Upload.AllowedTypes).RegisterRoutes(api, authMW)
}

// staticMount is the route prefix for locally stored uploads.
func staticMount(publicBase string) string {
	if strings.HasPrefix(publicBase, "/") && len(publicBase) > 1 {
		return strings.TrimRight(publicBase, "/")
	}
	return "/uploads"
}
