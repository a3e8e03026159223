package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("FLAPSHIP_BOARD_URL", "https://rw.env.example.com")
	t.Setenv("FLAPSHIP_API_KEY", "env-key")
	t.Setenv("FLAPSHIP_FRESHNESS", "90m")
	t.Setenv("FLAPSHIP_TEST_MODE", "true")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err != nil {
		t.Fatalf("apply env: %v", err)
	}

	if cfg.BoardURL != "https://rw.env.example.com" {
		t.Fatalf("board url = %q", cfg.BoardURL)
	}
	if cfg.APIKey != "env-key" {
		t.Fatalf("api key = %q", cfg.APIKey)
	}
	if cfg.Freshness != 90*time.Minute {
		t.Fatalf("freshness = %v", cfg.Freshness)
	}
	if !cfg.TestMode {
		t.Fatal("test mode should be set")
	}
}

func TestApplyEnvConfigFlagPrecedence(t *testing.T) {
	t.Setenv("FLAPSHIP_API_KEY", "env-key")

	cfg := DefaultConfig()
	cfg.APIKey = "flag-key"

	changed := map[string]bool{"api-key": true}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.APIKey != "flag-key" {
		t.Fatalf("flag must beat env, got %q", cfg.APIKey)
	}
}

func TestApplyEnvConfigBadDuration(t *testing.T) {
	t.Setenv("FLAPSHIP_DISPATCH_INTERVAL", "whenever")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err == nil {
		t.Fatal("expected duration parse error")
	}
}
