package app

import (
	"net/url"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/nilehomes/landing/internal/config"
	"github.com/nilehomes/landing/internal/middleware"
)

// corsConfig allows every origin in development or when no allow-list is configured.
func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.HeaderRequestID, "Retry-After"},
		AllowCredentials: true,
		AllowOriginFunc:  func(string) bool { return true },
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		c.AllowOriginFunc = originAllowList(cfg.AllowedOrigins).allows
	}
	return c
}

// originAllowList holds host patterns: "example.com", "*.example.com" or "localhost:*".
type originAllowList []string

func (l originAllowList) allows(origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}
	host = strings.ToLower(host)
	for _, pattern := range l {
		if hostMatches(strings.ToLower(strings.TrimSpace(pattern)), host) {
			return true
		}
	}
	return false
}

func hostMatches(pattern, host string) bool {
	switch {
	case pattern == "" || host == "":
		return false
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
