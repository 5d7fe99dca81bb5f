package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/salmankhalil12/Restaurant-Site/pkg/config"
	"github.com/salmankhalil12/Restaurant-Site/pkg/database"
	"github.com/salmankhalil12/Restaurant-Site/pkg/tracing"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// ServiceName identifies the process in logs, metrics and traces.
const ServiceName = "foodsprint"

// Config holds all configuration for the FoodSprint cart service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Cart storage
	StorageBackend     string        `env:"STORAGE_BACKEND" envDefault:"memory"`
	CartStorageKey     string        `env:"CART_STORAGE_KEY" envDefault:"FoodSprintCart"`
	SlowQueryThreshold time.Duration `env:"SLOW_QUERY_THRESHOLD" envDefault:"200ms"`

	// Redis
	RedisHost     string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	RedisTTL      time.Duration `env:"REDIS_CART_TTL" envDefault:"0s"`

	// Postgres
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"foodsprint"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"foodsprint"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"foodsprint"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// Debug endpoints; empty disables pprof.
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envSeparator:","`

	// UI
	ToastTTL time.Duration `env:"TOAST_TTL" envDefault:"3s"`
	MenuFile string        `env:"MENU_FILE"`

	// Tracing
	OTelEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint   string  `env:"OTEL_ENDPOINT" envDefault:"localhost:4318"`
	OTelSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load foodsprint config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom reads configuration from environ instead of the process
// environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.LoadFrom(cfg, environ); err != nil {
		return nil, fmt.Errorf("load foodsprint config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	switch c.StorageBackend {
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("invalid storage backend %q: want memory, redis or postgres", c.StorageBackend)
	}
	if c.CartStorageKey == "" {
		return fmt.Errorf("cart storage key must not be empty")
	}
	if c.ToastTTL <= 0 {
		return fmt.Errorf("toast TTL must be positive, got %s", c.ToastTTL)
	}
	if c.OTelSampleRate < 0 || c.OTelSampleRate > 1 {
		return fmt.Errorf("invalid OTel sample rate: %v", c.OTelSampleRate)
	}
	return nil
}

// Redis returns the Redis connection settings.
func (c *Config) Redis() database.RedisConfig {
	rc := database.DefaultRedisConfig()
	rc.Host = c.RedisHost
	rc.Port = c.RedisPort
	rc.Password = c.RedisPassword
	rc.DB = c.RedisDB
	return rc
}

// Postgres returns the Postgres connection settings.
func (c *Config) Postgres() database.PostgresConfig {
	pc := database.DefaultPostgresConfig()
	pc.Host = c.PostgresHost
	pc.Port = c.PostgresPort
	pc.User = c.PostgresUser
	pc.Password = c.PostgresPassword
	pc.DBName = c.PostgresDB
	pc.SSLMode = c.PostgresSSLMode
	return pc
}

// Tracing returns the OpenTelemetry settings.
func (c *Config) Tracing() tracing.Config {
	tc := tracing.DefaultConfig(ServiceName)
	tc.Environment = c.Environment
	tc.OTLPEndpoint = c.OTelEndpoint
	tc.SampleRate = c.OTelSampleRate
	tc.Enabled = c.OTelEnabled
	return tc
}
