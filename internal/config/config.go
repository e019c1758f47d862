// Package config loads the booth client's target configuration.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// BoothConfig is the booth client's default target.
type BoothConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	TimeoutMS int64  `toml:"timeout_ms"`
}

func (c BoothConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c BoothConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func LoadBoothConfig(path string) (BoothConfig, error) {
	var cfg BoothConfig
	if err := loadToml(path, &cfg); err != nil {
		return BoothConfig{}, err
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == 0 {
		cfg.Port = 12345
	}
	if cfg.TimeoutMS == 0 {
		cfg.TimeoutMS = 5000
	}
	if err := ValidateBoothConfig(cfg); err != nil {
		return BoothConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateBoothConfig(cfg BoothConfig) error {
	if strings.TrimSpace(cfg.Host) == "" {
		return fmt.Errorf("booth config missing host")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("booth config port out of range: %d", cfg.Port)
	}
	if cfg.TimeoutMS < 0 {
		return fmt.Errorf("booth config timeout must not be negative")
	}
	return nil
}
