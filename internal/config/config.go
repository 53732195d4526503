package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at configPath. ${VAR} references are expanded from the environment,
// which is first supplemented from a .env file next to the config, if present.
// Variables already set in the process environment win over .env entries.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Parse builds an AppConfig from YAML content.
func Parse(content []byte) (*AppConfig, error) {
	expanded := os.ExpandEnv(string(content))

	cfg := defaultAppConfig()
	decoder := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	decoder.KnownFields(true)
	raw := rawAppConfig{}
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if err := applyRawAppConfig(&cfg, raw); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	cfg := AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Driver:          DBDriverMySQL,
			Host:            defaultDBHost,
			Port:            defaultDBPort,
			User:            defaultDBUser,
			Name:            defaultDBName,
			Charset:         defaultDBCharset,
			Loc:             defaultDBLoc,
			MaxOpenConns:    defaultDBMaxOpenConns,
			MaxIdleConns:    defaultDBMaxIdleConns,
			ConnMaxLifetime: defaultDBConnMaxLifeSec * time.Second,
			AutoMigrate:     true,
		},
		Redis: RedisRuntimeConfig{URL: defaultRedisURL},
		JWT: JWTRuntimeConfig{
			Secret:    DefaultJWTSecret,
			ExpiresIn: defaultJWTTTL,
		},
		BcryptCost: defaultBcryptCost,
		Storage:    StorageRuntimeConfig{Driver: defaultStorageDriver, PublicBaseURL: defaultUploadsPrefix},
		Upload: UploadRuntimeConfig{
			MaxSizeMB:    defaultUploadMaxSizeMB,
			AllowedTypes: append([]string(nil), defaultAllowedUploadTypes...),
		},
		RateLimit: RateLimitRuntimeConfig{
			LeadsPerMinute:  defaultLeadsPerMinute,
			LoginsPerMinute: defaultLoginsPerMinute,
		},
		Metrics:         MetricsRuntimeConfig{Enable: true, Path: defaultMetricsPath},
		Sentry:          SentryRuntimeConfig{SampleRate: defaultSentrySampleRate},
		ShutdownTimeout: defaultShutdownTimeout,
	}
	cfg.DSN = cfg.Database.DSNValue()
	return cfg
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) error {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = normalizeEnv(v)
	}

	db, err := applyRawDatabaseConfig(cfg.Database, raw.Database)
	if err != nil {
		return err
	}
	cfg.Database = db
	if v := strings.TrimSpace(raw.DSN); v != "" {
		cfg.Database.DSN = v
	}
	cfg.DSN = cfg.Database.DSNValue()

	if raw.Redis.Enable != nil {
		cfg.Redis.Enable = *raw.Redis.Enable
	}
	if v := strings.TrimSpace(raw.Redis.URL); v != "" {
		cfg.Redis.URL = v
		if raw.Redis.Enable == nil {
			cfg.Redis.Enable = true
		}
	}

	if v := strings.TrimSpace(raw.JWTSecret); v != "" {
		cfg.JWT.Secret = v
	}
	if v := strings.TrimSpace(raw.JWT.Secret); v != "" {
		cfg.JWT.Secret = v
	}
	if v := strings.TrimSpace(raw.JWT.ExpiresIn); v != "" {
		ttl, err := ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid jwt.expires_in %q: %w", v, err)
		}
		cfg.JWT.ExpiresIn = ttl
	}

	if raw.Auth.BcryptCost != 0 {
		cfg.BcryptCost = raw.Auth.BcryptCost
	}
	if len(raw.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	}
	if v := strings.TrimSpace(raw.Paths.Logs); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.Paths.Uploads); v != "" {
		cfg.Paths.Uploads = v
	}

	cfg.Storage = applyRawStorageConfig(cfg.Storage, raw.Storage)

	if raw.Upload.MaxSizeMB != 0 {
		cfg.Upload.MaxSizeMB = raw.Upload.MaxSizeMB
	}
	if len(raw.Upload.AllowedTypes) > 0 {
		cfg.Upload.AllowedTypes = normalizeExtensions(raw.Upload.AllowedTypes)
	}
	if raw.RateLimit.LeadsPerMinute != nil {
		cfg.RateLimit.LeadsPerMinute = *raw.RateLimit.LeadsPerMinute
	}
	if raw.RateLimit.LoginsPerMinute != nil {
		cfg.RateLimit.LoginsPerMinute = *raw.RateLimit.LoginsPerMinute
	}
	if raw.Metrics.Enable != nil {
		cfg.Metrics.Enable = *raw.Metrics.Enable
	}
	if v := strings.TrimSpace(raw.Metrics.Path); v != "" {
		cfg.Metrics.Path = "/" + strings.Trim(v, "/")
	}
	cfg.Sentry.DSN = strings.TrimSpace(raw.Sentry.DSN)
	if raw.Sentry.SampleRate != nil {
		cfg.Sentry.SampleRate = *raw.Sentry.SampleRate
	}
	if v := strings.TrimSpace(raw.Shutdown); v != "" {
		d, err := ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid shutdown_timeout %q: %w", v, err)
		}
		cfg.ShutdownTimeout = d
	}
	return nil
}

func applyRawDatabaseConfig(current DatabaseRuntimeConfig, raw rawDatabaseConfig) (DatabaseRuntimeConfig, error) {
	if v := strings.ToLower(strings.TrimSpace(raw.Driver)); v != "" {
		current.Driver = v
		if v == DBDriverPostgres {
			current.Port = defaultPostgresPort
			current.User = defaultPostgresUser
		}
	}
	if v := strings.TrimSpace(raw.DSN); v != "" {
		current.DSN = v
	}
	if v := strings.TrimSpace(raw.Host); v != "" {
		current.Host = v
	}
	if raw.Port != 0 {
		current.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.User); v != "" {
		current.User = v
	}
	if raw.Password != "" {
		current.Password = raw.Password
	}
	if v := strings.TrimSpace(raw.Name); v != "" {
		current.Name = v
	}
	if v := strings.TrimSpace(raw.Charset); v != "" {
		current.Charset = v
	}
	if v := strings.TrimSpace(raw.Loc); v != "" {
		current.Loc = v
	}
	if len(raw.Params) > 0 {
		current.Params = copyStringMap(raw.Params)
	}
	if raw.MaxOpenConns != 0 {
		current.MaxOpenConns = raw.MaxOpenConns
	}
	if raw.MaxIdleConns != 0 {
		current.MaxIdleConns = raw.MaxIdleConns
	}
	if v := strings.TrimSpace(raw.ConnMaxLifetime); v != "" {
		d, err := ParseDuration(v)
		if err != nil {
			return current, fmt.Errorf("invalid database.conn_max_lifetime %q: %w", v, err)
		}
		current.ConnMaxLifetime = d
	}
	if raw.AutoMigrate != nil {
		current.AutoMigrate = *raw.AutoMigrate
	}
	return current, nil
}

func applyRawStorageConfig(current StorageRuntimeConfig, raw rawStorageConfig) StorageRuntimeConfig {
	if v := strings.ToLower(strings.TrimSpace(raw.Driver)); v != "" {
		current.Driver = v
	}
	if v := strings.TrimSpace(raw.PublicBaseURL); v != "" {
		current.PublicBaseURL = strings.TrimRight(v, "/")
	}
	current.S3 = S3RuntimeConfig{
		Bucket:          strings.TrimSpace(raw.S3.Bucket),
		Region:          strings.TrimSpace(raw.S3.Region),
		Endpoint:        strings.TrimSpace(raw.S3.Endpoint),
		AccessKeyID:     strings.TrimSpace(raw.S3.AccessKeyID),
		SecretAccessKey: strings.TrimSpace(raw.S3.SecretAccessKey),
		Prefix:          strings.Trim(strings.TrimSpace(raw.S3.Prefix), "/"),
		PathStyle:       raw.S3.PathStyle,
	}
	return current
}

func (c *AppConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	switch c.Database.Driver {
	case DBDriverMySQL, DBDriverPostgres:
	default:
		return fmt.Errorf("invalid database.driver %q, expected %q or %q", c.Database.Driver, DBDriverMySQL, DBDriverPostgres)
	}
	if c.Database.DSN == "" && (c.Database.Port < 1 || c.Database.Port > 65535) {
		return fmt.Errorf("invalid database.port %d, expected 1-65535", c.Database.Port)
	}
	if c.BcryptCost < minBcryptCost || c.BcryptCost > maxBcryptCost {
		return fmt.Errorf("invalid auth.bcrypt_cost %d, expected %d-%d", c.BcryptCost, minBcryptCost, maxBcryptCost)
	}
	if c.JWT.ExpiresIn <= 0 {
		return fmt.Errorf("invalid jwt.expires_in %s, expected a positive duration", c.JWT.ExpiresIn)
	}
	if !c.IsDev() && c.Env != "test" && (c.JWT.Secret == "" || c.JWT.Secret == DefaultJWTSecret) {
		return errors.New("jwt.secret must be set outside development")
	}
	switch c.Storage.Driver {
	case StorageDriverLocal:
	case StorageDriverS3:
		if c.Storage.S3.Bucket == "" || c.Storage.S3.Region == "" {
			return errors.New("storage.s3 requires bucket and region")
		}
	default:
		return fmt.Errorf("invalid storage.driver %q, expected %q or %q", c.Storage.Driver, StorageDriverLocal, StorageDriverS3)
	}
	if c.Upload.MaxSizeMB < 1 {
		return fmt.Errorf("invalid upload.max_size_mb %d, expected >= 1", c.Upload.MaxSizeMB)
	}
	if c.RateLimit.LeadsPerMinute < 0 || c.RateLimit.LoginsPerMinute < 0 {
		return errors.New("rate_limit values must be >= 0")
	}
	if c.Sentry.SampleRate < 0 || c.Sentry.SampleRate > 1 {
		return fmt.Errorf("invalid sentry.sample_rate %v, expected 0-1", c.Sentry.SampleRate)
	}
	return nil
}

func copyStringMap(input map[string]string) map[string]string {
	out := make(map[string]string, len(input))
	for k, v := range input {
		out[k] = v
	}
	return out
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// Addr returns the listen address.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *AppConfig) LogDir() string {
	if c == nil {
		return ResolveRuntimePath("", "logs")
	}
	return ResolveRuntimePath(c.Paths.Logs, "logs")
}

func (c *AppConfig) UploadDir() string {
	if c == nil {
		return ResolveRuntimePath("", "uploads")
	}
	return ResolveRuntimePath(c.Paths.Uploads, "uploads")
}

// MaxUploadBytes is the upload size ceiling in bytes.
func (c *AppConfig) MaxUploadBytes() int64 {
	return int64(c.Upload.MaxSizeMB) << 20
}
