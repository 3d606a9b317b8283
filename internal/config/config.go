// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Database
	DatabasePath string // Path to SQLite file

	// Day gating
	Timezone string // Reference timezone for day unlocking (IANA name)

	// Sessions
	SessionHashKey  string // securecookie HMAC key (32 or 64 bytes)
	SessionBlockKey string // securecookie encryption key (16, 24 or 32 bytes)

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Cookie lifetimes. Admin sessions are short-lived because the role can
// rewrite calendar content; guest access lasts the whole season.
const (
	AdminSessionTTL = 24 * time.Hour
	GuestSessionTTL = 30 * 24 * time.Hour
)

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	// This is a no-op in production where env vars are set directly
	_ = godotenv.Load()

	cfg := &Config{}

	// Server settings
	cfg.Port = getEnvInt("PORT", 8080)
	cfg.Env = getEnv("ENV", EnvDevelopment)

	// Database
	cfg.DatabasePath = getEnv("DATABASE_PATH", "./data/adventcal.db")

	// Day gating
	cfg.Timezone = getEnv("TIMEZONE", "Asia/Taipei")

	// Sessions
	cfg.SessionHashKey = getEnv("SESSION_HASH_KEY", "")
	cfg.SessionBlockKey = getEnv("SESSION_BLOCK_KEY", "")

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	// Validate port range
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	// Validate environment
	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
		// Valid
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	// Validate database path is set
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	// Validate the reference timezone resolves
	if c.Timezone == "" {
		errs = append(errs, errors.New("TIMEZONE is required"))
	} else if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q is not a valid IANA timezone: %w", c.Timezone, err))
	}

	// Session keys are required in production. In development missing keys
	// fall back to ephemeral per-process keys (sessions reset on restart).
	if c.Env == EnvProduction {
		if c.SessionHashKey == "" {
			errs = append(errs, errors.New("SESSION_HASH_KEY is required in production"))
		}
		if c.SessionBlockKey == "" {
			errs = append(errs, errors.New("SESSION_BLOCK_KEY is required in production"))
		}
	}
	if c.SessionHashKey != "" {
		if n := len(c.SessionHashKey); n != 32 && n != 64 {
			errs = append(errs, fmt.Errorf("SESSION_HASH_KEY must be 32 or 64 bytes, got %d", n))
		}
	}
	if c.SessionBlockKey != "" {
		if n := len(c.SessionBlockKey); n != 16 && n != 24 && n != 32 {
			errs = append(errs, fmt.Errorf("SESSION_BLOCK_KEY must be 16, 24 or 32 bytes, got %d", n))
		}
	}

	// Validate log level
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	// Validate log format
	switch c.LogFormat {
	case "json", "text":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Location returns the reference timezone as a *time.Location.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
