// Package config reads the planner API settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultMaxBodyBytes is the request body limit when MAX_BODY_BYTES is unset.
const DefaultMaxBodyBytes int64 = 1 << 20

// Config is the API server configuration.
type Config struct {
	Port        string // PORT, default 8080
	DatabaseURL string // DATABASE_URL, required
	LogLevel    string // LOG_LEVEL: debug, info, warn or error

	// CORSOrigins comes from the comma-separated CORS_ORIGINS. The default
	// is the local calendar frontend.
	CORSOrigins []string

	// JWTSecret signs and verifies bearer tokens. Empty disables auth.
	JWTSecret string

	MaxBodyBytes   int64 // MAX_BODY_BYTES
	MigrateOnStart bool  // MIGRATE_ON_START, default true
}

// SlogLevel maps LogLevel onto slog, falling back to info.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Load builds a Config from the process environment. A .env file in the
// working directory fills in variables that are not already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read .env: %w", err)
	}

	var e env
	cfg := Config{
		Port:           e.str("PORT", "8080"),
		DatabaseURL:    e.required("DATABASE_URL"),
		LogLevel:       e.str("LOG_LEVEL", "info"),
		CORSOrigins:    e.list("CORS_ORIGINS", "http://localhost:5173"),
		JWTSecret:      e.str("JWT_SECRET", ""),
		MaxBodyBytes:   e.positive("MAX_BODY_BYTES", DefaultMaxBodyBytes),
		MigrateOnStart: e.boolean("MIGRATE_ON_START", true),
	}
	if err := e.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// env collects every problem so one failed start reports them all.
type env struct {
	missing, invalid []string
}

func (e *env) str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (e *env) required(key string) string {
	v := os.Getenv(key)
	if v == "" {
		e.missing = append(e.missing, key)
	}
	return v
}

func (e *env) list(key, def string) []string {
	var out []string
	for _, item := range strings.Split(e.str(key, def), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (e *env) positive(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		e.invalid = append(e.invalid, key)
		return def
	}
	return n
}

func (e *env) boolean(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.invalid = append(e.invalid, key)
		return def
	}
	return b
}

func (e *env) err() error {
	var problems []string
	if len(e.missing) > 0 {
		problems = append(problems, "not set: "+strings.Join(e.missing, ", "))
	}
	if len(e.invalid) > 0 {
		problems = append(problems, "invalid: "+strings.Join(e.invalid, ", "))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("environment %s", strings.Join(problems, "; "))
}
