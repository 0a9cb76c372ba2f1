package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// SystemDir is the hidden vault directory holding config and the
	// sqlite database.
	SystemDir = ".myflomo"

	// ConfigFileName is the optional vault config file inside SystemDir.
	ConfigFileName = "config.yaml"

	// DefaultHeatmapWeeks is used when the config does not set heatmap_weeks.
	DefaultHeatmapWeeks = 10
)

// FileConfig is the content of <vault>/.myflomo/config.yaml. Every field is
// optional; explicit options override it.
type FileConfig struct {
	Adapter      string `yaml:"adapter,omitempty"`
	Timezone     string `yaml:"timezone,omitempty"`
	HeatmapWeeks int    `yaml:"heatmap_weeks,omitempty"`
	MaxImageSize int64  `yaml:"max_image_size,omitempty"`
	WelcomeNote  *bool  `yaml:"welcome_note,omitempty"`
}

// ConfigPath returns the config file location for a vault.
func ConfigPath(vault string) string {
	return filepath.Join(vault, SystemDir, ConfigFileName)
}

// LoadConfig reads the vault config. A missing file yields the zero config.
func LoadConfig(vault string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(ConfigPath(vault))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", ConfigPath(vault), err)
	}
	if _, err := cfg.Location(); err != nil {
		return cfg, err
	}
	if cfg.HeatmapWeeks < 0 {
		return cfg, fmt.Errorf("heatmap_weeks must be positive, got %d", cfg.HeatmapWeeks)
	}
	return cfg, nil
}

// WriteConfig writes cfg to the vault, creating SystemDir if needed.
func WriteConfig(vault string, cfg FileConfig) error {
	if err := os.MkdirAll(filepath.Join(vault, SystemDir), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", SystemDir, err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath(vault), data, 0644)
}

// Location resolves Timezone; empty means the local zone.
func (c FileConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Weeks returns the configured heatmap window or the default.
func (c FileConfig) Weeks() int {
	if c.HeatmapWeeks > 0 {
		return c.HeatmapWeeks
	}
	return DefaultHeatmapWeeks
}
