package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadServiceConfigFromExample(t *testing.T) {
	cfg, err := loadServiceConfig("ex.config.toml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ListenAddr != ":12345" {
		t.Fatalf("unexpected listen addr: %q", cfg.ListenAddr)
	}
	if cfg.AdminAddr != "127.0.0.1:7070" {
		t.Fatalf("unexpected admin addr: %q", cfg.AdminAddr)
	}
	if cfg.StatsInterval != 5*time.Second {
		t.Fatalf("unexpected stats interval: %v", cfg.StatsInterval)
	}
	if cfg.ReadTimeout != 10*time.Second {
		t.Fatalf("unexpected read timeout: %v", cfg.ReadTimeout)
	}
	if len(cfg.CorsOrigins) != 1 || cfg.CorsOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins: %+v", cfg.CorsOrigins)
	}
	if cfg.LogFile != "server.log" {
		t.Fatalf("unexpected log file: %q", cfg.LogFile)
	}
}

func TestLoadServiceConfigPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tolld.toml")
	body := "listen_addr = \":9001\"\nstats_interval_ms = 250\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ListenAddr != ":9001" {
		t.Fatalf("unexpected listen addr: %q", cfg.ListenAddr)
	}
	if cfg.StatsInterval != 250*time.Millisecond {
		t.Fatalf("unexpected stats interval: %v", cfg.StatsInterval)
	}
	if cfg.AdminAddr != "" {
		t.Fatalf("expected admin surface disabled by default, got %q", cfg.AdminAddr)
	}
	if cfg.ReadTimeout != 10*time.Second {
		t.Fatalf("default read timeout lost: %v", cfg.ReadTimeout)
	}
}

func TestLoadServiceConfigRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tolld.toml")
	if err := os.WriteFile(path, []byte("stats_interval = \"soon\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadServiceConfig(path); err == nil {
		t.Fatal("expected duration parse error")
	}
}
