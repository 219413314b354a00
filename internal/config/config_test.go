package config

import (
	"testing"
)

// TestLoadDefaults verifies baseline configuration without environment.
func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ADDR", "API_PREFIX", "UPLOAD_DIR", "OUTPUT_DIR", "MAX_UPLOAD_MB", "ALLOWED_ORIGINS", "MODEL_SIZE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Fatalf("addr = %q, want :8080", cfg.Addr)
	}
	if cfg.APIPrefix != "/api" {
		t.Fatalf("api prefix = %q, want /api", cfg.APIPrefix)
	}
	if cfg.UploadDir != "tmp/uploads" || cfg.OutputDir != "tmp/transcripts" {
		t.Fatalf("dirs = %q / %q", cfg.UploadDir, cfg.OutputDir)
	}
	if cfg.MaxUploadMB != 200 {
		t.Fatalf("max upload = %d, want 200", cfg.MaxUploadMB)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("origins = %v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.ModelSize != "medium" {
		t.Fatalf("model size = %q, want medium", cfg.ModelSize)
	}
}

// TestLoadFromEnvironment verifies typed getters and origin splitting.
func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("API_PREFIX", "v1/")
	t.Setenv("MAX_UPLOAD_MB", "50")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MODEL_SIZE", "small")

	cfg := Load()

	if cfg.Addr != ":9090" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.APIPrefix != "/v1" {
		t.Fatalf("api prefix = %q, want normalized /v1", cfg.APIPrefix)
	}
	if cfg.MaxUploadMB != 50 {
		t.Fatalf("max upload = %d, want 50", cfg.MaxUploadMB)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.ModelSize != "small" {
		t.Fatalf("model size = %q", cfg.ModelSize)
	}
}

// TestValidateResetsBadValues verifies the post-load guardrails.
func TestValidateResetsBadValues(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "0")
	t.Setenv("ALLOWED_ORIGINS", " , ")

	cfg := Load()

	if cfg.MaxUploadMB != 200 {
		t.Fatalf("max upload = %d, want reset to 200", cfg.MaxUploadMB)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("origins = %v, want [*]", cfg.AllowedOrigins)
	}
}

// TestMaxUploadBytes verifies the MiB conversion.
func TestMaxUploadBytes(t *testing.T) {
	cfg := &Config{MaxUploadMB: 2}
	if got := cfg.MaxUploadBytes(); got != 2<<20 {
		t.Fatalf("max upload bytes = %d, want %d", got, 2<<20)
	}
}
