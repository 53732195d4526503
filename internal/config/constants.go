package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	// DefaultJWTSecret is accepted in development only.
	DefaultJWTSecret = "landing-dev-secret-change-me"

	defaultPort             = 5000
	defaultEnv              = "development"
	defaultDBHost           = "127.0.0.1"
	defaultDBPort           = 3306
	defaultDBUser           = "root"
	defaultDBName           = "real_estate"
	defaultDBCharset        = "utf8mb4"
	defaultDBLoc            = "UTC"
	defaultRedisURL         = "redis://localhost:6379/0"
	defaultJWTTTL           = 7 * 24 * time.Hour
	defaultBcryptCost       = 12
	minBcryptCost           = 10
	maxBcryptCost           = 31
	defaultStorageDriver    = StorageDriverLocal
	defaultUploadsPrefix    = "/uploads"
	defaultUploadMaxSizeMB  = 10
	defaultLeadsPerMinute   = 10
	defaultLoginsPerMinute  = 20
	defaultShutdownTimeout  = 10 * time.Second
	defaultDBMaxOpenConns   = 10
	defaultDBMaxIdleConns   = 5
	defaultDBConnMaxLifeSec = 300
	defaultPostgresPort     = 5432
	defaultPostgresUser     = "postgres"
	defaultPostgresSSLMode  = "disable"
	defaultMetricsPath      = "/metrics"
	defaultSentrySampleRate = 1.0
)

// DBDriverMySQL and DBDriverPostgres name the supported SQL dialects.
const (
	DBDriverMySQL    = "mysql"
	DBDriverPostgres = "postgres"
)

// StorageDriverLocal and StorageDriverS3 name the upload backends.
const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

var defaultAllowedUploadTypes = []string{".jpg", ".jpeg", ".png", ".webp", ".gif", ".svg", ".pdf", ".mp4"}
