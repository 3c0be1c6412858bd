// Package config handles configuration for zylix-runner.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the workspace configuration (config.yaml).
type Config struct {
	// Execution settings
	Workers     int           `yaml:"workers"`     // 0 = logical CPU count
	TaskTimeout time.Duration `yaml:"taskTimeout"` // default per-task timeout
	Retries     int           `yaml:"retries"`     // default per-task retry budget
	ShardIndex  int           `yaml:"shardIndex"`
	ShardTotal  int           `yaml:"shardTotal"`

	// Test selection
	IncludeTags []string `yaml:"includeTags"`
	ExcludeTags []string `yaml:"excludeTags"`

	// Health monitoring
	Health HealthConfig `yaml:"health"`

	// Backend endpoints, keyed by platform name
	Backends map[string]BackendConfig `yaml:"backends"`

	// Static device inventory registered at startup
	Devices []DeviceConfig `yaml:"devices"`

	// Environment variables exposed to task bodies
	Env map[string]string `yaml:"env"`
}

// HealthConfig sets the hysteresis thresholds for device demotion.
type HealthConfig struct {
	UnhealthyThreshold int `yaml:"unhealthyThreshold"`
	HealthyThreshold   int `yaml:"healthyThreshold"`
}

// BackendConfig points at one automation backend.
type BackendConfig struct {
	Host    string        `yaml:"host"`
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
}

// DeviceConfig declares one device in the static inventory.
type DeviceConfig struct {
	ID           string   `yaml:"id"`
	Platform     string   `yaml:"platform"`
	OSVersion    string   `yaml:"osVersion"`
	Capabilities []string `yaml:"capabilities"`
	Tags         []string `yaml:"tags"`
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	configPath = filepath.Join(dir, "config.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, return empty config
	return &Config{}, nil
}
