package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"worktime/internal/platform/config"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Store.Driver != config.DriverFile {
		t.Fatalf("expected file driver, got %s", cfg.Store.Driver)
	}
	if cfg.Store.Path != filepath.Join(dir, "store.json") {
		t.Fatalf("unexpected store path %s", cfg.Store.Path)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("expected warn log level, got %s", cfg.Log.Level)
	}
}

func TestLoadReadsConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "store:\n  driver: sqlite\nlog:\n  level: info\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WORKTIME_LOG_LEVEL", "debug")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Driver != config.DriverSQLite {
		t.Fatalf("expected sqlite driver from file, got %s", cfg.Store.Driver)
	}
	if cfg.Store.Path != filepath.Join(dir, "worktime.db") {
		t.Fatalf("expected sqlite default path, got %s", cfg.Store.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("env should override file, got %s", cfg.Log.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty data dir must fail")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("store:\n  driver: mysql\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(dir, path); err == nil {
		t.Fatalf("mysql without dsn must fail")
	}
	if _, err := config.Load(dir, filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("explicit missing config file must fail")
	}
}
