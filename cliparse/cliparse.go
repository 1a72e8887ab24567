package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         int           `env:"PORT" envDefault:"3318"`
	DatabaseURL  string        `env:"DATABASE_URL"`
	DatabaseType string        `env:"DATABASE_TYPE" envDefault:"sqlite"`
	SyncInterval time.Duration `env:"SYNC_INTERVAL" envDefault:"2s"`
	BaseURL      string        `env:"BASE_URL" envDefault:"http://localhost:3318"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
}

// ParseFlags builds the config from .env, the environment and flags, in
// increasing order of precedence.
func ParseFlags(args []string) (Config, error) {
	// A missing .env file is normal outside development
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	fs := flag.NewFlagSet("tribe-widget", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")
	fs.DurationVar(&cfg.SyncInterval, "sync-interval", cfg.SyncInterval, "Snapshot refresh cadence")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Public base URL for share links")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, errors.New("invalid port")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (sqlite or postgres)", cfg.DatabaseType)
	}
	if cfg.SyncInterval <= 0 {
		return Config{}, errors.New("sync interval must be positive")
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return cfg, nil
}

// ParseLogLevel maps a LOG_LEVEL value to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
