package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nilehomes/landing/internal/config"
	"github.com/nilehomes/landing/internal/database"
	"github.com/nilehomes/landing/internal/middleware"
	"github.com/nilehomes/landing/internal/pkg/jwt"
	"github.com/nilehomes/landing/internal/pkg/metrics"
	pkgredis "github.com/nilehomes/landing/internal/pkg/redis"
	"github.com/nilehomes/landing/internal/pkg/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	db      *gorm.DB
	redis   *pkgredis.Client
	store   storage.Store
	signer  *jwt.Signer
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// New initializes the application: DB → Redis → storage → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *pkgredis.Client
	if cfg.Redis.Enable {
		rc, err = pkgredis.Connect(cfg.Redis.URL)
		if err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("redis: %w", err)
		}
	} else {
		logger.Info("redis disabled, rate limiting is off")
	}

	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		_ = database.Close(db)
		if rc != nil {
			_ = rc.Close()
		}
		return nil, fmt.Errorf("storage: %w", err)
	}

	return newApp(logger, cfg, db, rc, store)
}

// newApp wires routes over already-open dependencies. rc may be nil.
func newApp(logger *zap.Logger, cfg *config.AppConfig, db *gorm.DB, rc *pkgredis.Client, store storage.Store) (*App, error) {
	signer, err := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	if cfg.JWT.Secret == config.DefaultJWTSecret {
		logger.Warn("jwt.secret is the built-in development value")
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	var m *metrics.Metrics
	if cfg.Metrics.Enable {
		m = metrics.New()
	}
	var hub *sentry.Hub
	if cfg.Sentry.DSN != "" {
		hub = sentry.CurrentHub()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.ReportErrors(hub))
	router.Use(middleware.Logger(logger))
	router.Use(m.Middleware())
	router.Use(cors.New(corsConfig(cfg)))

	app := &App{
		cfg:     cfg,
		router:  router,
		db:      db,
		redis:   rc,
		store:   store,
		signer:  signer,
		metrics: m,
		logger:  logger,
	}
	app.registerRoutes()
	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return a.cfg.Addr() }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases the store connections.
func (a *App) Shutdown() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", zap.Error(err))
		}
	}
	if err := database.Close(a.db); err != nil {
		a.logger.Warn("close database", zap.Error(err))
	}
}
