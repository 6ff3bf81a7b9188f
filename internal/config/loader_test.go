package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected server addr: %q", cfg.Server.Addr)
	}
	if cfg.Database.Enabled {
		t.Fatalf("database should be disabled by default")
	}
	if cfg.Audit.ReferenceYear != 0 {
		t.Fatalf("reference year should default to 0, got %d", cfg.Audit.ReferenceYear)
	}
	if cfg.Audit.OutputDir != "docs" {
		t.Fatalf("unexpected output dir: %q", cfg.Audit.OutputDir)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("unexpected log level: %q", cfg.Log.Level)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := `server:
  addr: ":9090"
audit:
  reference_year: 2024
log:
  level: debug
  json: true
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Fatalf("unexpected server addr: %q", cfg.Server.Addr)
	}
	if cfg.Audit.ReferenceYear != 2024 {
		t.Fatalf("unexpected reference year: %d", cfg.Audit.ReferenceYear)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CUSTAUDIT_SERVER_ADDR", ":7070")
	t.Setenv("CUSTAUDIT_AUDIT_REFERENCE_YEAR", "2025")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}

	if cfg.Server.Addr != ":7070" {
		t.Fatalf("env override not applied: %q", cfg.Server.Addr)
	}
	if cfg.Audit.ReferenceYear != 2025 {
		t.Fatalf("env override not applied: %d", cfg.Audit.ReferenceYear)
	}
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	dir := t.TempDir()
	data := "log:\n  level: loud\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatalf("expected validation error for bad log level")
	}
}
