package config

import (
	"os"
	"testing"
)

func TestLoadConfig_Valid(t *testing.T) {
	tmpFile := "test-planner.yaml"
	defer os.Remove(tmpFile)
	yaml := `
server:
  listen: ":8080"
elevation:
  base_url: "https://maps.googleapis.com/maps/api/elevation/json"
  api_key: ""
defaults:
  min_height_ft: 120
  max_height_ft: 400
plan_log: "plans.jsonl"
`
	if err := os.WriteFile(tmpFile, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	cfg, err := Load(tmpFile, "../../schemas/planner.cue")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("unexpected listen address: %q", cfg.Server.Listen)
	}
	if cfg.Defaults.MinHeightFt != 120 {
		t.Errorf("unexpected min height: %v", cfg.Defaults.MinHeightFt)
	}
	if mh := cfg.MaxHeight(); mh == nil || *mh != 400 {
		t.Errorf("unexpected max height: %v", mh)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	tmpFile := "test-planner-defaults.yaml"
	defer os.Remove(tmpFile)
	yaml := `
elevation:
  api_key: ""
`
	if err := os.WriteFile(tmpFile, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	cfg, err := Load(tmpFile, "../../schemas/planner.cue")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Server.Listen != ":5001" {
		t.Errorf("expected default listen :5001, got %q", cfg.Server.Listen)
	}
	if cfg.Defaults.MinHeightFt != 100 {
		t.Errorf("expected default min height 100, got %v", cfg.Defaults.MinHeightFt)
	}
	if cfg.MaxHeight() != nil {
		t.Errorf("expected no ceiling by default")
	}
}

func TestLoadConfig_EnvKeyOverride(t *testing.T) {
	tmpFile := "test-planner-env.yaml"
	defer os.Remove(tmpFile)
	yaml := `
elevation:
  api_key: "from-file"
`
	if err := os.WriteFile(tmpFile, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	t.Setenv("ELEVATION_API_KEY", "from-env")

	cfg, err := Load(tmpFile, "../../schemas/planner.cue")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Elevation.APIKey != "from-env" {
		t.Errorf("expected env override, got %q", cfg.Elevation.APIKey)
	}
}
