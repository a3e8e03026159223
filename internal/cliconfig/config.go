package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBoardURL is the board's read-write endpoint.
const DefaultBoardURL = "https://rw.vestaboard.com"

// Config holds CLI configuration for flapship.
type Config struct {
	BoardURL string
	APIKey   string

	DispatchInterval time.Duration
	HTTPTimeout      time.Duration
	Freshness        time.Duration

	CacheDir string

	SpoolDir      string
	SweepInterval time.Duration
	Retention     time.Duration

	FallbackText string
	Accent       string
	TestMode     bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		BoardURL:         DefaultBoardURL,
		DispatchInterval: 16 * time.Second,
		HTTPTimeout:      15 * time.Second,
		Freshness:        45 * time.Minute,
		CacheDir:         "", // Derived from the home directory during Validate
		SweepInterval:    1 * time.Hour,
		Retention:        72 * time.Hour,
		Accent:           "white",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.BoardURL == "" {
		c.BoardURL = DefaultBoardURL
	}

	// Ensure no trailing slash
	if c.BoardURL[len(c.BoardURL)-1] == '/' {
		c.BoardURL = c.BoardURL[:len(c.BoardURL)-1]
	}

	if c.CacheDir == "" {
		if h, err := os.UserHomeDir(); err == nil {
			c.CacheDir = filepath.Join(h, ".flapship")
		} else {
			return fmt.Errorf("cache-dir is required when no home directory is available")
		}
	}

	if c.DispatchInterval <= 0 {
		return fmt.Errorf("dispatch interval must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if c.Freshness < 0 {
		return fmt.Errorf("freshness must not be negative")
	}

	return nil
}

// Logger builds the console logger the CLI runs with.
func Logger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables and file values that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}
