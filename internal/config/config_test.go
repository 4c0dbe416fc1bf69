package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg SpikesConfig
	if err := yaml.Unmarshal(defaultSpikesYAML, &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultSpikesConfig()) {
		t.Errorf("embedded defaults differ from DefaultSpikesConfig():\n%+v\n%+v", cfg, DefaultSpikesConfig())
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultSpikesConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg := DefaultSpikesConfig()

	if cfg.TickInterval() != 100*time.Millisecond {
		t.Errorf("TickInterval() = %v", cfg.TickInterval())
	}
	if cfg.RefreshInterval() != 2*time.Second {
		t.Errorf("RefreshInterval() = %v", cfg.RefreshInterval())
	}
	if cfg.SegmentWidth() != 50 {
		t.Errorf("SegmentWidth() = %v, expected 50", cfg.SegmentWidth())
	}
	if cfg.MaxPos() != 470 {
		t.Errorf("MaxPos() = %v, expected 470", cfg.MaxPos())
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SpikesConfig)
	}{
		{"zero arena", func(c *SpikesConfig) { c.Arena.Size = 0 }},
		{"player as large as arena", func(c *SpikesConfig) { c.Arena.PlayerSize = 500 }},
		{"sub-unit player", func(c *SpikesConfig) { c.Arena.PlayerSize = 0.5 }},
		{"negative spike height", func(c *SpikesConfig) { c.Arena.SpikeHeight = -1 }},
		{"no segments", func(c *SpikesConfig) { c.Arena.Segments = 0 }},
		{"no vertical speed", func(c *SpikesConfig) { c.Motion.VerticalSpeed = 0 }},
		{"negative edge bonus", func(c *SpikesConfig) { c.Motion.EdgeBonus = -5 }},
		{"danger chance above one", func(c *SpikesConfig) { c.Hazards.DangerChance = 1.5 }},
		{"tier without period", func(c *SpikesConfig) { c.Hazards.BonusTiers[1].Every = 0 }},
		{"zero tick", func(c *SpikesConfig) { c.Timing.TickMS = 0 }},
		{"no top scores", func(c *SpikesConfig) { c.Scores.TopN = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSpikesConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadCustomPathMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("arena:\n  size: 300\nhazards:\n  danger_chance: 0.5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Arena.Size != 300 {
		t.Errorf("Arena.Size = %v, expected 300", cfg.Arena.Size)
	}
	if cfg.Hazards.DangerChance != 0.5 {
		t.Errorf("DangerChance = %v, expected 0.5", cfg.Hazards.DangerChance)
	}
	// Untouched keys keep defaults
	if cfg.Arena.PlayerSize != 30 || len(cfg.Hazards.BonusTiers) != 4 {
		t.Errorf("defaults were not preserved: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("arena: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("arena:\n  player_size: 600\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() of an invalid config should wrap ErrInvalidConfig, got %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultSpikesConfig())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	var back SpikesConfig
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	if !reflect.DeepEqual(back, DefaultSpikesConfig()) {
		t.Errorf("round trip changed config: %+v", back)
	}
}
