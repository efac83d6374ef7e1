package config

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres:///warbler")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.SessionDuration != 24*time.Hour {
		t.Fatalf("expected 24h session duration, got %v", cfg.SessionDuration)
	}
	if cfg.BcryptCost != bcrypt.DefaultCost {
		t.Fatalf("expected default bcrypt cost, got %d", cfg.BcryptCost)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Addr())
	}
}

func TestFromEnvCollectsErrors(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_DURATION", "forever")
	t.Setenv("BCRYPT_COST", "99")

	_, err := FromEnv()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"DATABASE_URL", "SESSION_DURATION", "BCRYPT_COST"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got %v", want, err)
		}
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres:///warbler")
	t.Setenv("PORT", "9000")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("TIMELINE_LIMIT", "25")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" || !cfg.CookieSecure || cfg.TimelineLimit != 25 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestFromEnvRejectsNonPositiveDurations(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"CLEANUP_INTERVAL", "0s"},
		{"CLEANUP_INTERVAL", "-1m"},
		{"SESSION_DURATION", "0s"},
		{"SESSION_DURATION", "-24h"},
		{"MAX_IDLE_TIME", "-1h"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres:///warbler")
			t.Setenv(tt.key, tt.value)

			cfg, err := FromEnv()
			if err == nil {
				t.Fatalf("expected error, got config %+v", cfg)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Fatalf("expected error to mention %s, got %v", tt.key, err)
			}
		})
	}
}

func TestFromEnvAllowsDisabledIdleTimeout(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres:///warbler")
	t.Setenv("MAX_IDLE_TIME", "0s")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxIdleTime != 0 {
		t.Fatalf("expected idle timeout disabled, got %v", cfg.MaxIdleTime)
	}
}
