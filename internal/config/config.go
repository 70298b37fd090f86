// Package config handles loading and validation of workflow settings.
//
// Settings are read from settings.toml in the workflow data directory,
// with environment variable overrides for the values Alfred exposes as
// workflow variables (CACHE_MINUTES, ACCOUNTS). Settings are deliberately
// re-read on every invocation: each keystroke is a fresh process and the
// user can change workflow variables at any time.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// settingsFile is the name of the settings file in the data directory.
const settingsFile = "settings.toml"

// Config holds the workflow settings.
type Config struct {
	// Accounts restricts results to lists from these accounts,
	// e.g. "iCloud" or "On My Mac". Empty means all accounts.
	Accounts []string `toml:"accounts"`

	// CacheMinutes is how long cached lists are considered fresh.
	// 0 means always stale.
	CacheMinutes int `toml:"cache_minutes"`

	// RetryAfterSeconds is how long to wait after a failed fetch before
	// trying Reminders.app again.
	RetryAfterSeconds int `toml:"retry_after_seconds"`

	// FetchTimeoutSeconds bounds a single osascript round-trip.
	FetchTimeoutSeconds int `toml:"fetch_timeout_seconds"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		CacheMinutes:        10,
		RetryAfterSeconds:   60,
		FetchTimeoutSeconds: 30,
	}
}

// MaxAge returns the cache freshness window as a duration.
func (c Config) MaxAge() time.Duration {
	return time.Duration(c.CacheMinutes) * time.Minute
}

// RetryAfter returns the failed-fetch backoff window as a duration.
func (c Config) RetryAfter() time.Duration {
	return time.Duration(c.RetryAfterSeconds) * time.Second
}

// FetchTimeout returns the osascript deadline as a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Path returns the settings file path inside the given data directory.
func Path(dataDir string) string {
	return filepath.Join(dataDir, settingsFile)
}

// Load reads settings from dataDir and applies environment overrides.
// Returns Default() if the file doesn't exist (no error); returns an error
// only if the file exists but is invalid, alongside usable defaults.
func Load(dataDir string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(dataDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		applyEnv(&cfg)
		return cfg, fmt.Errorf("read settings file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		cfg = Default()
		applyEnv(&cfg)
		return cfg, fmt.Errorf("invalid settings file: %w", err)
	}

	if cfg.CacheMinutes < 0 {
		cfg.CacheMinutes = 0
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overrides settings from Alfred workflow variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CACHE_MINUTES"); v != "" {
		if mins, err := strconv.Atoi(v); err == nil && mins >= 0 {
			cfg.CacheMinutes = mins
		}
	}
	if v := os.Getenv("ACCOUNTS"); v != "" {
		var accounts []string
		for _, a := range strings.Split(v, ",") {
			if a = strings.TrimSpace(a); a != "" {
				accounts = append(accounts, a)
			}
		}
		cfg.Accounts = accounts
	}
}
