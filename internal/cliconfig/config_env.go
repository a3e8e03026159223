package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (FLAPSHIP_*).
// It respects flags that have been explicitly set (changed map).
// Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("board-url", os.Getenv("FLAPSHIP_BOARD_URL"), &cfg.BoardURL)
	s.setString("api-key", os.Getenv("FLAPSHIP_API_KEY"), &cfg.APIKey)
	s.setString("cache-dir", os.Getenv("FLAPSHIP_CACHE_DIR"), &cfg.CacheDir)
	s.setString("spool-dir", os.Getenv("FLAPSHIP_SPOOL_DIR"), &cfg.SpoolDir)
	s.setString("fallback-text", os.Getenv("FLAPSHIP_FALLBACK_TEXT"), &cfg.FallbackText)
	s.setString("accent", os.Getenv("FLAPSHIP_ACCENT"), &cfg.Accent)

	if err := s.setDuration("dispatch-interval", os.Getenv("FLAPSHIP_DISPATCH_INTERVAL"), &cfg.DispatchInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("FLAPSHIP_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("freshness", os.Getenv("FLAPSHIP_FRESHNESS"), &cfg.Freshness); err != nil {
		return err
	}
	if err := s.setDuration("sweep-interval", os.Getenv("FLAPSHIP_SWEEP_INTERVAL"), &cfg.SweepInterval); err != nil {
		return err
	}
	if err := s.setDuration("retention", os.Getenv("FLAPSHIP_RETENTION"), &cfg.Retention); err != nil {
		return err
	}

	s.setBoolFromString("test", os.Getenv("FLAPSHIP_TEST_MODE"), &cfg.TestMode)

	return nil
}
