package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port            int
	Env             string // "development" | "production" | "test"
	DSN             string // resolved DSN for Database.Driver
	Database        DatabaseRuntimeConfig
	Redis           RedisRuntimeConfig
	JWT             JWTRuntimeConfig
	BcryptCost      int
	AllowedOrigins  []string
	Paths           RuntimePathsConfig
	Storage         StorageRuntimeConfig
	Upload          UploadRuntimeConfig
	RateLimit       RateLimitRuntimeConfig
	Metrics         MetricsRuntimeConfig
	Sentry          SentryRuntimeConfig
	ShutdownTimeout time.Duration
}

type DatabaseRuntimeConfig struct {
	Driver          string // "mysql" | "postgres"
	DSN             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	Charset         string
	Loc             string
	Params          map[string]string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type RedisRuntimeConfig struct {
	Enable bool
	URL    string
}

type JWTRuntimeConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type RuntimePathsConfig struct {
	Logs    string
	Uploads string
}

type StorageRuntimeConfig struct {
	Driver        string
	PublicBaseURL string
	S3            S3RuntimeConfig
}

type S3RuntimeConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
	PathStyle       bool
}

type UploadRuntimeConfig struct {
	MaxSizeMB    int
	AllowedTypes []string
}

type RateLimitRuntimeConfig struct {
	LeadsPerMinute  int
	LoginsPerMinute int
}

type MetricsRuntimeConfig struct {
	Enable bool
	Path   string
}

// SentryRuntimeConfig enables error reporting when DSN is set.
type SentryRuntimeConfig struct {
	DSN        string
	SampleRate float64
}

type rawAppConfig struct {
	Port           int               `yaml:"port"`
	Env            string            `yaml:"env"`
	DSN            string            `yaml:"dsn"`
	Database       rawDatabaseConfig `yaml:"database"`
	Redis          rawRedisConfig    `yaml:"redis"`
	JWT            rawJWTConfig      `yaml:"jwt"`
	JWTSecret      string            `yaml:"jwt_secret"`
	Auth           rawAuthConfig     `yaml:"auth"`
	AllowedOrigins []string          `yaml:"allowed_origins"`
	Paths          rawPathsConfig    `yaml:"paths"`
	Storage        rawStorageConfig  `yaml:"storage"`
	Upload         rawUploadConfig   `yaml:"upload"`
	RateLimit      rawRateLimit      `yaml:"rate_limit"`
	Metrics        rawMetricsConfig  `yaml:"metrics"`
	Sentry         rawSentryConfig   `yaml:"sentry"`
	Shutdown       string            `yaml:"shutdown_timeout"`
}

type rawDatabaseConfig struct {
	Driver          string            `yaml:"driver"`
	DSN             string            `yaml:"dsn"`
	Host            string            `yaml:"host"`
	Port            int               `yaml:"port"`
	User            string            `yaml:"user"`
	Password        string            `yaml:"password"`
	Name            string            `yaml:"name"`
	Charset         string            `yaml:"charset"`
	Loc             string            `yaml:"loc"`
	Params          map[string]string `yaml:"params"`
	MaxOpenConns    int               `yaml:"max_open_conns"`
	MaxIdleConns    int               `yaml:"max_idle_conns"`
	ConnMaxLifetime string            `yaml:"conn_max_lifetime"`
	AutoMigrate     *bool             `yaml:"auto_migrate"`
}

type rawRedisConfig struct {
	Enable *bool  `yaml:"enable"`
	URL    string `yaml:"url"`
}

type rawJWTConfig struct {
	Secret    string `yaml:"secret"`
	ExpiresIn string `yaml:"expires_in"`
}

type rawAuthConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

type rawPathsConfig struct {
	Logs    string `yaml:"logs"`
	Uploads string `yaml:"uploads"`
}

type rawStorageConfig struct {
	Driver        string      `yaml:"driver"`
	PublicBaseURL string      `yaml:"public_base_url"`
	S3            rawS3Config `yaml:"s3"`
}

type rawS3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Prefix          string `yaml:"prefix"`
	PathStyle       bool   `yaml:"path_style"`
}

type rawUploadConfig struct {
	MaxSizeMB    int      `yaml:"max_size_mb"`
	AllowedTypes []string `yaml:"allowed_types"`
}

type rawRateLimit struct {
	LeadsPerMinute  *int `yaml:"leads_per_minute"`
	LoginsPerMinute *int `yaml:"logins_per_minute"`
}

type rawMetricsConfig struct {
	Enable *bool  `yaml:"enable"`
	Path   string `yaml:"path"`
}

type rawSentryConfig struct {
	DSN        string   `yaml:"dsn"`
	SampleRate *float64 `yaml:"sample_rate"`
}
