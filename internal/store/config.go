package store

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const configFileName = "config.toml"

// Config holds workspace-level settings read from .triage/config.toml.
// Every field has a working default so a missing file is fine.
type Config struct {
	// EstimateHeight is the assumed row height (in cells) before a row
	// has been measured.
	EstimateHeight int `toml:"estimate_height"`
	// Overscan is how many extra rows to render beyond the visible
	// range on each side.
	Overscan int `toml:"overscan"`
	// SaveDebounceMS is the quiet period before structural changes are
	// written to disk.
	SaveDebounceMS int `toml:"save_debounce_ms"`
	// Profile selects the appearance profile ("default" or "compact").
	Profile string `toml:"profile"`
	// LogLevel is a logrus level name ("debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		EstimateHeight: 1,
		Overscan:       5,
		SaveDebounceMS: 500,
		Profile:        "default",
		LogLevel:       "warn",
	}
}

func (c Config) SaveDebounce() time.Duration {
	return time.Duration(c.SaveDebounceMS) * time.Millisecond
}

// LoadConfig reads the workspace config, layering file values and then
// TRIAGE_* environment overrides on top of the defaults.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(dir, configFileName)
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
	}
	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TRIAGE_OVERSCAN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Overscan = n
		}
	}
	if v := os.Getenv("TRIAGE_SAVE_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SaveDebounceMS = n
		}
	}
	if v := os.Getenv("TRIAGE_PROFILE"); v != "" {
		c.Profile = v
	}
	if v := os.Getenv("TRIAGE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) normalize() {
	if c.EstimateHeight < 1 {
		c.EstimateHeight = 1
	}
	if c.Overscan < 0 {
		c.Overscan = 0
	}
	if c.SaveDebounceMS < 0 {
		c.SaveDebounceMS = 0
	}
	if c.Profile != "compact" {
		c.Profile = "default"
	}
}
