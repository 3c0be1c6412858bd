package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
workers: 4
taskTimeout: 90s
retries: 2
includeTags:
  - smoke
excludeTags:
  - wip
health:
  unhealthyThreshold: 3
  healthyThreshold: 2
backends:
  web:
    host: 127.0.0.1
    port: 9515
    timeout: 30s
  linux:
    port: 8300
devices:
  - id: pixel-7
    platform: android
    osVersion: "14"
    capabilities: [uiautomator2]
    tags: [physical]
env:
  USER: test
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Workers)
	}
	if cfg.TaskTimeout != 90*time.Second {
		t.Errorf("expected 90s task timeout, got %v", cfg.TaskTimeout)
	}
	if cfg.Retries != 2 {
		t.Errorf("expected 2 retries, got %d", cfg.Retries)
	}
	if len(cfg.IncludeTags) != 1 || cfg.IncludeTags[0] != "smoke" {
		t.Errorf("expected includeTags [smoke], got %v", cfg.IncludeTags)
	}
	if cfg.Health.UnhealthyThreshold != 3 || cfg.Health.HealthyThreshold != 2 {
		t.Errorf("unexpected health thresholds: %+v", cfg.Health)
	}
	if b := cfg.Backends["web"]; b.Host != "127.0.0.1" || b.Port != 9515 || b.Timeout != 30*time.Second {
		t.Errorf("unexpected web backend: %+v", b)
	}
	if b := cfg.Backends["linux"]; b.Port != 8300 {
		t.Errorf("unexpected linux backend: %+v", b)
	}
	if len(cfg.Devices) != 1 {
		t.Fatalf("expected 1 device, got %d", len(cfg.Devices))
	}
	d := cfg.Devices[0]
	if d.ID != "pixel-7" || d.Platform != "android" || d.OSVersion != "14" {
		t.Errorf("unexpected device: %+v", d)
	}
	if cfg.Env["USER"] != "test" {
		t.Errorf("expected env USER=test, got %v", cfg.Env)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `workers: [invalid yaml`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoad_EmptyConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(configPath, []byte(``), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Workers != 0 || len(cfg.Devices) != 0 {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadFromDir_ConfigYaml(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `workers: 2`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Workers)
	}
}

func TestLoadFromDir_ConfigYml(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	content := `workers: 3`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", cfg.Workers)
	}
}

func TestLoadFromDir_NoConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return empty config
	if cfg.Workers != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadFromDir_PrefersYamlOverYml(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`workers: 1`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(`workers: 9`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should prefer config.yaml
	if cfg.Workers != 1 {
		t.Errorf("expected workers 1 (from config.yaml), got %d", cfg.Workers)
	}
}
