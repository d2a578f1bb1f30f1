package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Server.Port != 3001 {
		t.Errorf("expected default port 3001, got %d", cfg.Server.Port)
	}
	if cfg.Server.AllowedOrigins != "*" {
		t.Errorf("expected default allowed origins '*', got %q", cfg.Server.AllowedOrigins)
	}
	if cfg.Data.FilePath != "./data/candidates.json" {
		t.Errorf("unexpected default data file path %q", cfg.Data.FilePath)
	}
	if cfg.Data.PersistInterval != 30*time.Second {
		t.Errorf("expected default persist interval 30s, got %v", cfg.Data.PersistInterval)
	}
	if cfg.Client.BaseURL != "http://localhost:3001" {
		t.Errorf("unexpected default base url %q", cfg.Client.BaseURL)
	}
	if cfg.Client.DelayMS != 0 {
		t.Errorf("expected default delay 0, got %d", cfg.Client.DelayMS)
	}
	if cfg.Misc.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.Misc.LogLevel)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: 8080
  allowed_origins: "http://localhost:5173"
data:
  file_path: /tmp/candidates.json
  persist_interval: 5s
client:
  base_url: http://store.internal:8080
  delay_ms: 250
misc:
  log_level: debug
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.AllowedOrigins != "http://localhost:5173" {
		t.Errorf("unexpected allowed origins %q", cfg.Server.AllowedOrigins)
	}
	if cfg.Data.FilePath != "/tmp/candidates.json" {
		t.Errorf("unexpected data file path %q", cfg.Data.FilePath)
	}
	if cfg.Data.PersistInterval != 5*time.Second {
		t.Errorf("expected persist interval 5s, got %v", cfg.Data.PersistInterval)
	}
	if cfg.Client.BaseURL != "http://store.internal:8080" {
		t.Errorf("unexpected base url %q", cfg.Client.BaseURL)
	}
	if cfg.Client.DelayMS != 250 {
		t.Errorf("expected delay 250, got %d", cfg.Client.DelayMS)
	}
	if cfg.Misc.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.Misc.LogLevel)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("HIREDESK_SERVER_PORT", "9999")
	t.Setenv("HIREDESK_CLIENT_DELAY_MS", "100")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("expected env override port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Client.DelayMS != 100 {
		t.Errorf("expected env override delay 100, got %d", cfg.Client.DelayMS)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(dir); err == nil {
		t.Error("expected error for malformed config file")
	}
}
