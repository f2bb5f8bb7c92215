package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := DefaultConfig()
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
	if cfg.SaveDebounce() != 500*time.Millisecond {
		t.Fatalf("SaveDebounce = %v", cfg.SaveDebounce())
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	contents := "overscan = 12\nsave_debounce_ms = 250\nprofile = \"compact\"\nlog_level = \"debug\"\n"
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Overscan != 12 || cfg.SaveDebounceMS != 250 || cfg.Profile != "compact" || cfg.LogLevel != "debug" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("TRIAGE_OVERSCAN", "3")
	t.Setenv("TRIAGE_PROFILE", "compact")
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Overscan != 3 || cfg.Profile != "compact" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadConfigNormalizes(t *testing.T) {
	dir := t.TempDir()
	contents := "estimate_height = 0\noverscan = -4\nprofile = \"neon\"\n"
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.EstimateHeight != 1 || cfg.Overscan != 0 || cfg.Profile != "default" {
		t.Fatalf("normalization failed: %+v", cfg)
	}
}

func TestLoadConfigBadTOML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte("overscan = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(dir); err == nil {
		t.Fatal("expected parse error")
	}
}
