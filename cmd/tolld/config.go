package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/tollctl/internal/toll"
)

type fileConfig struct {
	ListenAddr      string   `toml:"listen_addr"`
	AdminAddr       string   `toml:"admin_addr"`
	StatsInterval   string   `toml:"stats_interval"`
	StatsIntervalMS int64    `toml:"stats_interval_ms"`
	ReadTimeout     string   `toml:"read_timeout"`
	WriteTimeout    string   `toml:"write_timeout"`
	DrainTimeout    string   `toml:"drain_timeout"`
	CorsOrigins     []string `toml:"cors_origins"`
	LogFile         string   `toml:"log_file"`
}

// loadServiceConfig overlays the TOML file onto the service defaults; only
// fields present in the file override.
func loadServiceConfig(path string) (toll.ServiceConfig, error) {
	cfg := toll.DefaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return toll.ServiceConfig{}, fmt.Errorf("load tolld config: %w", err)
	}

	if meta.IsDefined("listen_addr") {
		cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}
	if meta.IsDefined("admin_addr") {
		cfg.AdminAddr = strings.TrimSpace(raw.AdminAddr)
	}
	if meta.IsDefined("stats_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.StatsInterval))
		if err != nil {
			return toll.ServiceConfig{}, fmt.Errorf("parse stats_interval: %w", err)
		}
		cfg.StatsInterval = d
	}
	if meta.IsDefined("stats_interval_ms") {
		cfg.StatsInterval = time.Duration(raw.StatsIntervalMS) * time.Millisecond
	}
	if meta.IsDefined("read_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ReadTimeout))
		if err != nil {
			return toll.ServiceConfig{}, fmt.Errorf("parse read_timeout: %w", err)
		}
		cfg.ReadTimeout = d
	}
	if meta.IsDefined("write_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.WriteTimeout))
		if err != nil {
			return toll.ServiceConfig{}, fmt.Errorf("parse write_timeout: %w", err)
		}
		cfg.WriteTimeout = d
	}
	if meta.IsDefined("drain_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.DrainTimeout))
		if err != nil {
			return toll.ServiceConfig{}, fmt.Errorf("parse drain_timeout: %w", err)
		}
		cfg.DrainTimeout = d
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = raw.CorsOrigins
	}
	if meta.IsDefined("log_file") {
		cfg.LogFile = strings.TrimSpace(raw.LogFile)
	}

	return cfg, nil
}
