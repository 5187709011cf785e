// Package config loads ngt settings from NGT_* environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Panels  PanelConfig
	Ops     OpsConfig
	Logging LogConfig
}

// PanelConfig holds the initial state of both panels. Empty directories
// mean the working directory.
type PanelConfig struct {
	StartDir    string `envconfig:"NGT_START_DIR"`
	RightDir    string `envconfig:"NGT_RIGHT_DIR"`
	ShowHidden  bool   `envconfig:"NGT_SHOW_HIDDEN" default:"false"`
	Sort        string `envconfig:"NGT_SORT" default:"name"`
	SortReverse bool   `envconfig:"NGT_SORT_REVERSE" default:"false"`
}

type OpsConfig struct {
	ChmodWorkers int `envconfig:"NGT_CHMOD_WORKERS" default:"4"`
	SyncWorkers  int `envconfig:"NGT_SYNC_WORKERS" default:"4"`
}

// LogConfig holds logging configuration. Without File nothing is logged.
type LogConfig struct {
	Level       string `envconfig:"NGT_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"NGT_LOG_DEV" default:"false"`
	File        string `envconfig:"NGT_LOG_FILE"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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

func Default() *Config {
	return &Config{
		Panels: PanelConfig{Sort: "name"},
		Ops: OpsConfig{
			ChmodWorkers: 4,
			SyncWorkers:  4,
		},
		Logging: LogConfig{Level: "info"},
	}
}

func (c *Config) Validate() error {
	if c.Ops.ChmodWorkers < 1 {
		return fmt.Errorf("NGT_CHMOD_WORKERS must be positive, got %d", c.Ops.ChmodWorkers)
	}
	if c.Ops.SyncWorkers < 1 {
		return fmt.Errorf("NGT_SYNC_WORKERS must be positive, got %d", c.Ops.SyncWorkers)
	}
	return nil
}
