// Package config loads the bot configuration from the environment. A .env
// file is read first when present so local runs need no exported variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the bot configuration
type Config struct {
	// Discord
	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"$"`
	BagEmoji      string `env:"BAG_EMOJI"      envDefault:"👜"`

	// Keep-alive HTTP server
	Port int `env:"PORT" envDefault:"8080"`

	// Pull ledger
	LedgerDriver  string        `env:"LEDGER_DRIVER"  envDefault:"memory"`
	LedgerTTL     time.Duration `env:"LEDGER_TTL"     envDefault:"24h"`
	RedisAddr     string        `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB"       envDefault:"0"`

	// FallbackNoticeTTL is how long a public "open your DMs" notice stays up
	FallbackNoticeTTL time.Duration `env:"FALLBACK_NOTICE_TTL" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads an optional .env file, then parses and validates the environment
func Load(envFiles ...string) (*Config, error) {
	// Missing .env files are fine, real environment variables still apply
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values the parser cannot
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DiscordToken) == "" {
		return errors.New("DISCORD_TOKEN cannot be empty")
	}

	if strings.TrimSpace(c.CommandPrefix) == "" {
		return errors.New("COMMAND_PREFIX cannot be empty")
	}

	if c.BagEmoji == "" {
		return errors.New("BAG_EMOJI cannot be empty")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}

	switch c.LedgerDriver {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid LEDGER_DRIVER %q (memory|redis)", c.LedgerDriver)
	}

	if c.FallbackNoticeTTL <= 0 {
		return errors.New("FALLBACK_NOTICE_TTL must be positive")
	}

	if _, err := c.level(); err != nil {
		return err
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q (text|json)", c.LogFormat)
	}

	return nil
}

// ListenAddr is the keep-alive server address
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// NewLogger builds the slog logger described by LOG_LEVEL and LOG_FORMAT
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := c.level()
	if err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.ToLower(c.LogFormat) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (c *Config) level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
}
