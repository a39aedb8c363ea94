// YAML config loader with CUE validation integration
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP listen settings.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// ElevationConfig holds the elevation provider settings. The API key can be
// overridden with the ELEVATION_API_KEY environment variable.
type ElevationConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// DefaultsConfig holds the altitude defaults applied when a request omits
// them. MaxHeightFt of 0 means no ceiling.
type DefaultsConfig struct {
	MinHeightFt float64 `yaml:"min_height_ft"`
	MaxHeightFt float64 `yaml:"max_height_ft"`
}

// GreptimeConfig holds the optional plan-audit sink settings.
type GreptimeConfig struct {
	Endpoint string `yaml:"endpoint"`
	Database string `yaml:"database"`
}

// PlannerConfig is the root configuration of the mission planner.
type PlannerConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Elevation ElevationConfig `yaml:"elevation"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	PlanLog   string          `yaml:"plan_log"`
	Greptime  GreptimeConfig  `yaml:"greptime"`
}

// Load loads YAML config and validates it against a CUE schema.
func Load(configPath, cueSchemaPath string) (*PlannerConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg PlannerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":5001"
	}
	if cfg.Defaults.MinHeightFt == 0 {
		cfg.Defaults.MinHeightFt = 100
	}
	if env := os.Getenv("ELEVATION_API_KEY"); env != "" {
		cfg.Elevation.APIKey = env
	}

	return &cfg, nil
}

// MaxHeight returns the configured ceiling, or nil when none is set.
func (c *PlannerConfig) MaxHeight() *float64 {
	if c.Defaults.MaxHeightFt <= 0 {
		return nil
	}
	v := c.Defaults.MaxHeightFt
	return &v
}
