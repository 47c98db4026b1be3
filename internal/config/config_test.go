package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scheduling.HorizonDays != 30 {
		t.Fatalf("expected 30 day horizon, got %d", cfg.Scheduling.HorizonDays)
	}
	if cfg.Scheduling.Location() != time.UTC {
		t.Fatalf("expected UTC location")
	}
	if len(cfg.Documents.RequiredTypes) != 3 {
		t.Fatalf("expected 3 required document types, got %v", cfg.Documents.RequiredTypes)
	}
	if cfg.Storage.Driver != "memory" || cfg.Notifications.Driver != "log" {
		t.Fatalf("unexpected drivers: %+v %+v", cfg.Storage, cfg.Notifications)
	}
}

func TestLoad_FileOverridesAndEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "adoptions.yaml")
	raw := `
scheduling:
  timezone: America/Bogota
  slots: ["10:00", "11:30"]
  horizonDays: 14
documents:
  requiredTypes: [identification]
notifications:
  timeout: 2s
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SCHEDULE_HORIZON_DAYS", "21")
	t.Setenv("DB_DSN", "postgres://localhost/adoptions")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scheduling.Location().String() != "America/Bogota" {
		t.Fatalf("expected Bogota location, got %s", cfg.Scheduling.Location())
	}
	if len(cfg.Scheduling.Slots) != 2 || cfg.Scheduling.Slots[1] != "11:30" {
		t.Fatalf("unexpected slots %v", cfg.Scheduling.Slots)
	}
	if cfg.Scheduling.HorizonDays != 21 {
		t.Fatalf("env should win over file, got %d", cfg.Scheduling.HorizonDays)
	}
	if cfg.Notifications.Timeout != 2*time.Second {
		t.Fatalf("expected 2s timeout, got %s", cfg.Notifications.Timeout)
	}
	if cfg.Database.DSN != "postgres://localhost/adoptions" {
		t.Fatalf("expected DSN from env, got %q", cfg.Database.DSN)
	}
	// Campos no presentes en el archivo conservan el default.
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Server.Addr)
	}
}

func TestLoad_RejectsInvalidSlot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("scheduling:\n  slots: [\"9am\"]\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for invalid slot")
	}
}
