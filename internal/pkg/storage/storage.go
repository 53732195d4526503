package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/nilehomes/landing/internal/config"
)

// Object describes one upload.
type Object struct {
	Key         string
	Size        int64
	ContentType string
	Body        io.Reader
}

// Store persists uploaded media and returns its public URL.
type Store interface {
	Put(ctx context.Context, obj Object) (string, error)
	Delete(ctx context.Context, key string) error
}

// New builds the Store selected by cfg.Storage.Driver.
func New(ctx context.Context, cfg *config.AppConfig) (Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverLocal:
		return NewLocal(cfg.UploadDir(), cfg.Storage.PublicBaseURL)
	case config.StorageDriverS3:
		return NewS3(ctx, cfg.Storage.S3, cfg.Storage.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// CleanKey normalises an object key and rejects traversal.
func CleanKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	cleaned := strings.TrimPrefix(path.Clean("/"+key), "/")
	if cleaned == "" || cleaned == "." || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return cleaned, nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
