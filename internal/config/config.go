// Package config loads the splice command's settings from the
// environment. Command-line flags take precedence over everything here.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all command configuration.
type Config struct {
	Transfer TransferConfig
	Logging  LogConfig
}

// TransferConfig holds defaults for the transfer itself.
type TransferConfig struct {
	Flags  string `envconfig:"SPLICE_FLAGS" default:""`
	Bridge bool   `envconfig:"SPLICE_BRIDGE" default:"false"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Transfer: TransferConfig{
			Flags:  "",
			Bridge: false,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
