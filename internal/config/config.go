// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Primary store kinds, derived from the DATABASE_URL scheme.
const (
	PrimaryNone     = ""
	PrimaryMongoDB  = "mongodb"
	PrimaryPostgres = "postgres"
)

// defaultPort is used when neither APP_PORT nor PORT is set.
const defaultPort = "5000"

// devAdminPassword seeds the fallback admin account outside production.
const devAdminPassword = "admin123"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string `envconfig:"APP_HOST" default:"0.0.0.0"`
	Port     string `envconfig:"APP_PORT"`
	Env      string `envconfig:"APP_ENV" default:"development"` // "development", "production", "testing"
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Primary document store. Empty means fallback only.
	DatabaseURL    string        `envconfig:"DATABASE_URL"`
	DatabaseName   string        `envconfig:"DATABASE_NAME" default:"portfolio"`
	ConnectTimeout time.Duration `envconfig:"DATABASE_CONNECT_TIMEOUT" default:"5s"`

	// Fallback store file
	DataFile string `envconfig:"DATA_FILE" default:"data/portfolio.json"`

	// Valkey (Redis-compatible cache). Empty address disables the cache.
	ValkeyAddr     string `envconfig:"VALKEY_ADDR"`
	ValkeyPassword string `envconfig:"VALKEY_PASSWORD"`

	// Admin access
	AdminAPIKey   string `envconfig:"ADMIN_API_KEY"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@portfolio.local"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	// Theme engine
	ThemeFallbackPolicy string `envconfig:"THEME_FALLBACK_POLICY" default:"newest"`
	ThemeHistoryLimit   int    `envconfig:"THEME_HISTORY_LIMIT" default:"50"`

	// Public form rate limit, per client IP
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"0.2"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"5"`
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.Port == "" {
		cfg.Port = os.Getenv("PORT")
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	if cfg.Env == "production" {
		if cfg.AdminAPIKey == "" {
			return nil, fmt.Errorf("ADMIN_API_KEY must be set in production")
		}
		if cfg.AdminPassword == "" || cfg.AdminPassword == devAdminPassword {
			return nil, fmt.Errorf("ADMIN_PASSWORD must be set in production")
		}
	} else if cfg.AdminPassword == "" {
		cfg.AdminPassword = devAdminPassword
	}

	if _, err := cfg.PrimaryKind(); err != nil {
		return nil, err
	}
	if cfg.ThemeHistoryLimit <= 0 {
		return nil, fmt.Errorf("THEME_HISTORY_LIMIT must be positive, got %d", cfg.ThemeHistoryLimit)
	}

	return &cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// PrimaryKind returns which primary store DATABASE_URL points at.
func (c *Config) PrimaryKind() (string, error) {
	u := strings.TrimSpace(c.DatabaseURL)
	switch {
	case u == "":
		return PrimaryNone, nil
	case strings.HasPrefix(u, "mongodb://"), strings.HasPrefix(u, "mongodb+srv://"):
		return PrimaryMongoDB, nil
	case strings.HasPrefix(u, "postgres://"), strings.HasPrefix(u, "postgresql://"):
		return PrimaryPostgres, nil
	}
	return "", fmt.Errorf("DATABASE_URL: unsupported scheme in %q", redact(u))
}

// SlogLevel maps LOG_LEVEL to a slog level. Unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// redact drops credentials from a connection string for error messages.
func redact(u string) string {
	scheme, rest, ok := strings.Cut(u, "://")
	if !ok {
		return "<invalid>"
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***@" + rest[at+1:]
	}
	return scheme + "://" + rest
}
