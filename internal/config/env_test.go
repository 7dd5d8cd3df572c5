package config

import (
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.test,https://b.test")

	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv returned error: %v", err)
	}
	if cfg.BackendBaseURL != "https://api.example.com" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.BackendBaseURL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.APKProbeInterval != 10*time.Minute {
		t.Fatalf("unexpected probe interval %v", cfg.APKProbeInterval)
	}
	if cfg.Company().Name != "ALTURA TRAVEL" {
		t.Fatalf("unexpected company %+v", cfg.Company())
	}
}

func TestLoadEnvRejectsBadValues(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com")
	t.Setenv("LOG_FORMAT", "xml")
	if _, err := LoadEnv(); err == nil {
		t.Fatalf("expected validation error for LOG_FORMAT")
	}
}

func TestLocationFallback(t *testing.T) {
	loc := Env{Timezone: "Nowhere/Invalid"}.Location()
	if _, off := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone(); off != 7*3600 {
		t.Fatalf("expected UTC+7 fallback, got offset %d", off)
	}
}

func TestLoadEnvRequiresBackendURL(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "")
	if _, err := LoadEnv(); err == nil {
		t.Fatalf("expected error without BACKEND_BASE_URL")
	}
}
