// Package config loads and validates the service configuration from a YAML
// file with environment variable overrides.
package config

import (
	"fmt"
	"os"
)

// Dataset source kinds.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Default configuration values.
const (
	defaultServiceName  = "burrito-shack-analytics"
	defaultServicePort  = 8094
	defaultVersion      = "0.1.0"
	defaultSource       = SourceFile
	defaultDatasetPath  = "data/marketing_daily.csv"
	defaultUploadMaxMB  = 16
	defaultLoggingLevel = "info"
	defaultLoggingFmt   = "json"
	defaultDBHost       = "localhost"
	defaultDBPort       = 5432
	defaultDBName       = "burrito_analytics"
	defaultDBUser       = "postgres"
	defaultDBSSLMode    = "disable"

	defaultUploadsPerMinute = 6
	defaultWindowSeconds    = 60

	bytesPerMB  = 1 << 20
	maxPort     = 65535
	envConfig   = "CONFIG_PATH"
	defaultPath = "config.yml"
)

// Config holds the application configuration.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Database  DatabaseConfig  `yaml:"database"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"ANALYTICS_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"      yaml:"debug"`

	// DatasetSource selects where the dataset loads from at startup:
	// "file" (CSV at DatasetPath) or "postgres".
	DatasetSource string `env:"ANALYTICS_DATASET_SOURCE" yaml:"dataset_source"`
	DatasetPath   string `env:"ANALYTICS_DATASET_PATH"   yaml:"dataset_path"`

	// UploadMaxBytes caps the size of CSV uploads on the dataset endpoint.
	UploadMaxBytes int64 `yaml:"upload_max_bytes"`
}

// DatabaseConfig holds PostgreSQL configuration, used when the dataset
// source is "postgres" and by cmd/migrate.
type DatabaseConfig struct {
	Host     string `env:"POSTGRES_ANALYTICS_HOST"     yaml:"host"`
	Port     int    `env:"POSTGRES_ANALYTICS_PORT"     yaml:"port"`
	User     string `env:"POSTGRES_ANALYTICS_USER"     yaml:"user"`
	Password string `env:"POSTGRES_ANALYTICS_PASSWORD" yaml:"password"`
	Database string `env:"POSTGRES_ANALYTICS_DB"       yaml:"database"`
	SSLMode  string `env:"POSTGRES_ANALYTICS_SSLMODE"  yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// URL returns the postgres:// form of the connection, used by migrations.
func (d *DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode,
	)
}

// RateLimitConfig limits dataset uploads per client IP.
type RateLimitConfig struct {
	MaxUploadsPerWindow int `yaml:"max_uploads_per_window"`
	WindowSeconds       int `yaml:"window_seconds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// Path returns the config file path from CONFIG_PATH, or the default.
func Path() string {
	if p := os.Getenv(envConfig); p != "" {
		return p
	}
	return defaultPath
}

// Load loads configuration from the specified path, applies defaults, then
// re-applies env overrides so the environment always wins.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := loadYAML(path, &cfg); err != nil {
		return nil, err
	}
	setDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setRateLimitDefaults(&cfg.RateLimit)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
	if svc.DatasetSource == "" {
		svc.DatasetSource = defaultSource
	}
	if svc.DatasetPath == "" {
		svc.DatasetPath = defaultDatasetPath
	}
	if svc.UploadMaxBytes == 0 {
		svc.UploadMaxBytes = defaultUploadMaxMB * bytesPerMB
	}
}

func setDatabaseDefaults(db *DatabaseConfig) {
	if db.Host == "" {
		db.Host = defaultDBHost
	}
	if db.Port == 0 {
		db.Port = defaultDBPort
	}
	if db.User == "" {
		db.User = defaultDBUser
	}
	if db.Database == "" {
		db.Database = defaultDBName
	}
	if db.SSLMode == "" {
		db.SSLMode = defaultDBSSLMode
	}
}

func setRateLimitDefaults(rl *RateLimitConfig) {
	if rl.MaxUploadsPerWindow == 0 {
		rl.MaxUploadsPerWindow = defaultUploadsPerMinute
	}
	if rl.WindowSeconds == 0 {
		rl.WindowSeconds = defaultWindowSeconds
	}
}

func setLoggingDefaults(log *LoggingConfig) {
	if log.Level == "" {
		log.Level = defaultLoggingLevel
	}
	if log.Format == "" {
		log.Format = defaultLoggingFmt
	}
}

// ValidationError reports an invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Service.Port < 1 || c.Service.Port > maxPort {
		return &ValidationError{Field: "service.port", Message: "must be between 1 and 65535"}
	}

	switch c.Service.DatasetSource {
	case SourceFile:
		if c.Service.DatasetPath == "" {
			return &ValidationError{Field: "service.dataset_path", Message: "is required"}
		}
	case SourcePostgres:
		if c.Database.Host == "" || c.Database.Database == "" {
			return &ValidationError{Field: "database", Message: "host and database are required"}
		}
	default:
		return &ValidationError{
			Field:   "service.dataset_source",
			Message: `must be "file" or "postgres"`,
		}
	}

	return nil
}
