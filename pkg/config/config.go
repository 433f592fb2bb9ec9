package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// Environment name constants used in ENVIRONMENT config field.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Config holds all configuration for the application
type Config struct {
	// Database: sqlite://<path> (embedded, default) or postgres://...
	DatabaseURL string `conf:"default:sqlite://dune_crafting.db,env:DATABASE_URL"`

	// Catalog dataset loaded into an empty store at startup.
	CatalogDataPath string `conf:"default:data/items_data.json,env:CATALOG_DATA_PATH"`

	// HTTP
	Host string `conf:"default:0.0.0.0,env:HOST"`
	Port int    `conf:"default:8000,env:PORT"`

	// Redis item read-model cache; empty disables it.
	RedisURL string `conf:"env:REDIS_URL"`

	// Per-endpoint request ceilings, counted per client IP per window.
	RateLimitListItems   int           `conf:"default:20,env:RATE_LIMIT_LIST_ITEMS"`
	RateLimitGetItem     int           `conf:"default:60,env:RATE_LIMIT_GET_ITEM"`
	RateLimitSearchItems int           `conf:"default:10,env:RATE_LIMIT_SEARCH_ITEMS"`
	RateLimitWindow      time.Duration `conf:"default:1m,env:RATE_LIMIT_WINDOW"`

	// Application
	LogLevel    string `conf:"default:info,env:LOG_LEVEL"`
	Environment string `conf:"default:development,enum:development|testing|production,env:ENVIRONMENT"`

	// Honour X-Forwarded-For / X-Real-IP for the client address. Only enable
	// behind a reverse proxy; otherwise clients choose their rate-limit key.
	TrustProxyHeaders bool `conf:"default:false,env:TRUST_PROXY_HEADERS"`

	// CORS: comma-separated list of allowed origins; use * to allow all
	CORSAllowedOrigins string `conf:"default:*,env:CORS_ALLOWED_ORIGINS"`

	// Observability
	ServiceName    string `conf:"default:dune-crafting-api,env:SERVICE_NAME"`
	ServiceVersion string `conf:"default:1.2.1,env:SERVICE_VERSION"`
	OtelEndpoint   string `conf:"env:OTEL_ENDPOINT"`
	SentryDSN      string `conf:"env:SENTRY_DSN,noprint"`
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error wrapping conf.ErrHelpWanted when --help was passed; the
// usage text is the error message.
func Load() (*Config, error) {
	var cfg Config
	_ = godotenv.Load()
	help, err := conf.Parse("", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			return nil, fmt.Errorf("%w\n%s", conf.ErrHelpWanted, help)
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// String renders the configuration for startup logs. Fields tagged noprint
// are masked.
func String(cfg *Config) string {
	out, err := conf.String(cfg)
	if err != nil {
		return fmt.Sprintf("<unprintable config: %v>", err)
	}
	return out
}

// Validate checks settings that would make the service misbehave in any
// environment.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Port < 1 || cfg.Port > 65535 {
		errs = append(errs, fmt.Sprintf("PORT must be between 1 and 65535 (got %d)", cfg.Port))
	}
	if cfg.RateLimitListItems < 1 {
		errs = append(errs, fmt.Sprintf("RATE_LIMIT_LIST_ITEMS must be positive (got %d)", cfg.RateLimitListItems))
	}
	if cfg.RateLimitGetItem < 1 {
		errs = append(errs, fmt.Sprintf("RATE_LIMIT_GET_ITEM must be positive (got %d)", cfg.RateLimitGetItem))
	}
	if cfg.RateLimitSearchItems < 1 {
		errs = append(errs, fmt.Sprintf("RATE_LIMIT_SEARCH_ITEMS must be positive (got %d)", cfg.RateLimitSearchItems))
	}
	if cfg.RateLimitWindow <= 0 {
		errs = append(errs, fmt.Sprintf("RATE_LIMIT_WINDOW must be positive (got %s)", cfg.RateLimitWindow))
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		errs = append(errs, "DATABASE_URL must not be empty")
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
}

// ValidateForProduction enforces requirements when ENVIRONMENT=production.
// Returns an error if any critical settings are missing or unsafe.
// No-ops for non-production environments.
func ValidateForProduction(cfg *Config) error {
	if cfg.Environment != EnvProduction {
		return nil
	}

	var errs []string

	if cfg.LogLevel == "debug" {
		errs = append(errs, "LOG_LEVEL must not be 'debug' in production (may leak sensitive data)")
	}

	if strings.Contains(cfg.DatabaseURL, ":memory:") {
		errs = append(errs, "DATABASE_URL must not point at an in-memory SQLite database in production (catalog would be lost on restart)")
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("production config validation failed: %s", strings.Join(errs, "; "))
}
