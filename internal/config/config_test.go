package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "biolink")
	t.Setenv("APP_ENV", "development")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "biolink")
	t.Setenv("DB_USER", "biolink")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SLUG_RESERVATION_WINDOW", "")
	t.Setenv("SLUG_LOOKUP_TIMEOUT", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("DB_SSL_MODE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Slug.ReservationWindow != 0 || cfg.Slug.LookupTimeout != 0 {
		t.Fatalf("expected unset slug overrides, got %+v", cfg.Slug)
	}
	if cfg.Redis.Addr() != "localhost:6379" {
		t.Fatalf("unexpected redis addr %q", cfg.Redis.Addr())
	}
	if cfg.Database.DBSSLMode != "disable" {
		t.Fatalf("expected sslmode disable, got %q", cfg.Database.DBSSLMode)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoad_ProductionDefaultsToJSONLogs(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Log.Format != "json" {
		t.Fatalf("expected json format, got %q", cfg.Log.Format)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "")
	t.Setenv("DB_HOST", " ")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	if !strings.Contains(err.Error(), "HTTP_PORT") || !strings.Contains(err.Error(), "DB_HOST") {
		t.Fatalf("expected missing keys in error, got %v", err)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SLUG_RESERVATION_WINDOW", "twenty minutes")

	_, err := Load()
	if !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected errInvalidEnv, got %v", err)
	}
	if !strings.Contains(err.Error(), "SLUG_RESERVATION_WINDOW") {
		t.Fatalf("expected key in error, got %v", err)
	}
}

func TestLoad_CustomWindow(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SLUG_RESERVATION_WINDOW", "45m")
	t.Setenv("DB_POOL_MAX_CONNS", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Slug.ReservationWindow != 45*time.Minute {
		t.Fatalf("expected 45m, got %s", cfg.Slug.ReservationWindow)
	}
	if cfg.Database.PoolMaxConns != 12 {
		t.Fatalf("expected 12 max conns, got %d", cfg.Database.PoolMaxConns)
	}
}
