package config

import (
	"testing"
	"time"

	"github.com/nplfantasy/fantasy-cricket/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_STORAGE_DRIVER", "redis")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_STORAGE_DRIVER")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("expected default storage driver %q, got %q", StorageMemory, cfg.StorageDriver)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.RecalcMaxWorkers != 4 {
		t.Fatalf("unexpected RecalcMaxWorkers: %d", cfg.RecalcMaxWorkers)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_IdentityCircuitParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("IDENTITY_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("IDENTITY_CIRCUIT_OPEN_TIMEOUT", "30s")
	t.Setenv("IDENTITY_TOKEN_CACHE_TTL", "2m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.IdentityCircuitFailureCount != 3 {
		t.Fatalf("unexpected IdentityCircuitFailureCount: %d", cfg.IdentityCircuitFailureCount)
	}
	if cfg.IdentityCircuitOpenTimeout != 30*time.Second {
		t.Fatalf("unexpected IdentityCircuitOpenTimeout: %s", cfg.IdentityCircuitOpenTimeout)
	}
	if cfg.IdentityTokenCacheTTL != 2*time.Minute {
		t.Fatalf("unexpected IdentityTokenCacheTTL: %s", cfg.IdentityTokenCacheTTL)
	}
}

func TestLoad_InvalidCacheTTL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CACHE_TTL", "0s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for CACHE_TTL=0s")
	}
}
