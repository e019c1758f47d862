package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "booth.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadBoothConfigDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := LoadBoothConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Host != "127.0.0.1" {
		t.Fatalf("unexpected host: %q", cfg.Host)
	}
	if cfg.Port != 12345 {
		t.Fatalf("unexpected port: %d", cfg.Port)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout())
	}
	if cfg.Addr() != "127.0.0.1:12345" {
		t.Fatalf("unexpected addr: %q", cfg.Addr())
	}
}

func TestLoadBoothConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
host = "toll.example.net"
port = 9999
timeout_ms = 1500
`)

	cfg, err := LoadBoothConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Host != "toll.example.net" {
		t.Fatalf("unexpected host: %q", cfg.Host)
	}
	if cfg.Port != 9999 {
		t.Fatalf("unexpected port: %d", cfg.Port)
	}
	if cfg.Timeout() != 1500*time.Millisecond {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout())
	}
}

func TestLoadBoothConfigRejectsBadPort(t *testing.T) {
	path := writeConfig(t, "port = 99999\n")

	if _, err := LoadBoothConfig(path); err == nil {
		t.Fatal("expected port validation error")
	}
}

func TestLoadBoothConfigMissingFile(t *testing.T) {
	if _, err := LoadBoothConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected load error for missing file")
	}
}
