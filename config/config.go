// Package config loads Warbler settings from the environment. A .env file
// in the working directory is read first when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"warbler/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	DatabaseURL     string
	Port            string
	SessionDuration time.Duration
	MaxIdleTime     time.Duration
	CleanupInterval time.Duration
	BcryptCost      int
	CookieSecure    bool
	TimelineLimit   int
}

// Load reads .env (if any) and then the process environment. All problems
// are collected and reported in a single error.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	var errs []string

	cfg := &Config{
		DatabaseURL:     required("DATABASE_URL", &errs),
		Port:            optional("PORT", models.DefaultPort),
		SessionDuration: optionalDuration("SESSION_DURATION", models.DefaultSessionDuration, &errs),
		MaxIdleTime:     optionalDuration("MAX_IDLE_TIME", models.DefaultMaxIdleTime, &errs),
		CleanupInterval: optionalDuration("CLEANUP_INTERVAL", models.DefaultCleanupInterval, &errs),
		BcryptCost:      optionalInt("BCRYPT_COST", bcrypt.DefaultCost, &errs),
		CookieSecure:    optionalBool("COOKIE_SECURE", false, &errs),
		TimelineLimit:   optionalInt("TIMELINE_LIMIT", models.DefaultTimelineLimit, &errs),
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Sprintf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cfg.BcryptCost))
	}
	if cfg.SessionDuration <= 0 {
		errs = append(errs, fmt.Sprintf("SESSION_DURATION must be positive, got %s", cfg.SessionDuration))
	}
	if cfg.MaxIdleTime < 0 {
		errs = append(errs, fmt.Sprintf("MAX_IDLE_TIME must not be negative, got %s", cfg.MaxIdleTime))
	}
	if cfg.CleanupInterval <= 0 {
		errs = append(errs, fmt.Sprintf("CLEANUP_INTERVAL must be positive, got %s", cfg.CleanupInterval))
	}
	if cfg.TimelineLimit <= 0 {
		errs = append(errs, fmt.Sprintf("TIMELINE_LIMIT must be positive, got %d", cfg.TimelineLimit))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func required(key string, errs *[]string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
	}
	return value
}

func optional(key, def string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return def
}

func optionalInt(key string, def int, errs *[]string) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s'", key, raw))
		return def
	}
	return v
}

func optionalDuration(key string, def time.Duration, errs *[]string) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration, got '%s'", key, raw))
		return def
	}
	return v
}

func optionalBool(key string, def bool, errs *[]string) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected boolean, got '%s'", key, raw))
		return def
	}
	return v
}
