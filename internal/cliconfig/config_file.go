package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	BoardURL         string `toml:"board_url"`
	APIKey           string `toml:"api_key"`
	DispatchInterval string `toml:"dispatch_interval"`
	HTTPTimeout      string `toml:"http_timeout"`
	Freshness        string `toml:"freshness"`
	CacheDir         string `toml:"cache_dir"`
	SpoolDir         string `toml:"spool_dir"`
	SweepInterval    string `toml:"sweep_interval"`
	Retention        string `toml:"retention"`
	FallbackText     string `toml:"fallback_text"`
	Accent           string `toml:"accent"`
	TestMode         *bool  `toml:"test_mode"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.flapship/config.toml if the user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".flapship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("board-url", fc.BoardURL, &cfg.BoardURL)
	s.setString("api-key", fc.APIKey, &cfg.APIKey)
	s.setString("cache-dir", fc.CacheDir, &cfg.CacheDir)
	s.setString("spool-dir", fc.SpoolDir, &cfg.SpoolDir)
	s.setString("fallback-text", fc.FallbackText, &cfg.FallbackText)
	s.setString("accent", fc.Accent, &cfg.Accent)

	if err := s.setDuration("dispatch-interval", fc.DispatchInterval, &cfg.DispatchInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("freshness", fc.Freshness, &cfg.Freshness); err != nil {
		return err
	}
	if err := s.setDuration("sweep-interval", fc.SweepInterval, &cfg.SweepInterval); err != nil {
		return err
	}
	if err := s.setDuration("retention", fc.Retention, &cfg.Retention); err != nil {
		return err
	}

	s.setBool("test", fc.TestMode, &cfg.TestMode)

	return nil
}
