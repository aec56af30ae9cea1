package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("loading missing config: %v", err)
	}

	if cfg.DBPath == "" {
		t.Error("expected default db path, got empty string")
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected default listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.DefaultLimit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, cfg.DefaultLimit)
	}
}

func TestLoadConfigRoundTrip(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.toml")

	original := &Config{
		DBPath:       "/tmp/blog.db",
		ListenAddr:   ":9999",
		DefaultLimit: 12,
		Debug:        true,
	}
	if err := original.SaveConfig(configPath); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if loaded.DBPath != original.DBPath {
		t.Errorf("DBPath: expected %q, got %q", original.DBPath, loaded.DBPath)
	}
	if loaded.ListenAddr != original.ListenAddr {
		t.Errorf("ListenAddr: expected %q, got %q", original.ListenAddr, loaded.ListenAddr)
	}
	if loaded.DefaultLimit != original.DefaultLimit {
		t.Errorf("DefaultLimit: expected %d, got %d", original.DefaultLimit, loaded.DefaultLimit)
	}
	if !loaded.Debug {
		t.Error("Debug: expected true after round trip")
	}
}

func TestLoadConfigAppliesDefaultsForZeroValues(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.toml")

	if err := os.WriteFile(configPath, []byte("debug = true\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.DBPath == "" {
		t.Error("expected default db path for empty value")
	}
	if cfg.DefaultLimit != DefaultLimit {
		t.Errorf("expected default limit %d for zero value, got %d", DefaultLimit, cfg.DefaultLimit)
	}
	if !cfg.Debug {
		t.Error("expected debug flag to survive defaulting")
	}
}

func TestSaveTemplateConfig(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := GetDefaultConfig()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	if err := cfg.SaveTemplateConfig(configPath); err != nil {
		t.Fatalf("saving template config: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("reading template config: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty template config")
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("template config does not parse: %v", err)
	}
	if loaded.DBPath != cfg.DBPath {
		t.Errorf("template db_path: expected %q, got %q", cfg.DBPath, loaded.DBPath)
	}
}
