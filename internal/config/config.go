// Package config loads skilldash configuration: defaults, then the
// optional .skilldash/config.yaml, then environment overrides. A .env file
// in the workspace is loaded first so both the config file and the
// overrides can come from it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all skilldash configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	UI      UIConfig      `yaml:"ui"`
	Refresh RefreshConfig `yaml:"refresh"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig locates the dashboard dataset.
type DataConfig struct {
	// Source is a local path or an http(s) URL to data.json.
	Source string `yaml:"source"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	Theme string `yaml:"theme"` // auto, light, dark
}

// RefreshConfig configures the market-data refresh pipeline.
type RefreshConfig struct {
	BaseURL            string `yaml:"base_url"`
	MonthsBack         int    `yaml:"months_back"`
	SnapshotMonthsBack int    `yaml:"snapshot_months_back"`
	PageSize           int    `yaml:"page_size"`
}

// ExportConfig configures snapshot export.
type ExportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// LoggingConfig controls the category file logger.
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Data: DataConfig{Source: "data.json"},
		UI:   UIConfig{Theme: "auto"},
		Refresh: RefreshConfig{
			BaseURL:            "https://data.usajobs.gov/api/historicjoa",
			MonthsBack:         24,
			SnapshotMonthsBack: 1,
			PageSize:           1000,
		},
		Export:  ExportConfig{OutputDir: "."},
		Logging: LoggingConfig{Debug: false},
	}
}

// Load builds the effective configuration for a workspace.
func Load(workspace string) (*Config, error) {
	// Best effort; a missing .env is the normal case.
	_ = godotenv.Load(filepath.Join(workspace, ".env"))

	cfg := Default()

	path := filepath.Join(workspace, ".skilldash", "config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv layers environment overrides on top. MONTHS_BACK and
// SNAPSHOT_MONTHS_BACK keep the names the original refresh script used so
// existing scheduler setups carry over.
func (c *Config) applyEnv() {
	if v := os.Getenv("SKILLDASH_DATA_SOURCE"); v != "" {
		c.Data.Source = v
	}
	if v := os.Getenv("SKILLDASH_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("SKILLDASH_DEBUG"); v != "" {
		c.Logging.Debug = v == "1" || v == "true"
	}
	if v := os.Getenv("SKILLDASH_REFRESH_BASE_URL"); v != "" {
		c.Refresh.BaseURL = v
	}
	if v, ok := envInt("MONTHS_BACK"); ok {
		c.Refresh.MonthsBack = v
	}
	if v, ok := envInt("SNAPSHOT_MONTHS_BACK"); ok {
		c.Refresh.SnapshotMonthsBack = v
	}
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
