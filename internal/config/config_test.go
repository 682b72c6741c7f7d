package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	parsed, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(parsed, DefaultOstrichConfig()) {
		t.Errorf("embedded YAML and DefaultOstrichConfig differ:\nyaml: %+v\ngo:   %+v", parsed, DefaultOstrichConfig())
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  gravity: 1.2\ndifficulty:\n  default: hard\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadOstrich(path)
	if err != nil {
		t.Fatalf("LoadOstrich() failed: %v", err)
	}

	if cfg.Physics.Gravity != 1.2 {
		t.Errorf("Gravity = %v, expected 1.2", cfg.Physics.Gravity)
	}
	if cfg.Physics.JumpForce != -10 {
		t.Errorf("JumpForce = %v, expected default -10", cfg.Physics.JumpForce)
	}
	if cfg.Difficulty.Default != "hard" {
		t.Errorf("Difficulty.Default = %q, expected hard", cfg.Difficulty.Default)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadOstrich(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("world: [unclosed"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadOstrich(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultOstrichConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	cfg.Obstacles.Gap = 590
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when gap does not fit the world")
	}
}

func TestApplyDifficultyPreset(t *testing.T) {
	tests := []struct {
		preset   string
		expected string
	}{
		{"", "medium"},
		{"easy", "easy"},
		{"normal", "medium"},
		{"HARD", "hard"},
		{"nightmare", "medium"},
	}

	for _, tc := range tests {
		t.Run(tc.preset, func(t *testing.T) {
			cfg := DefaultOstrichConfig()
			ApplyDifficultyPreset(&cfg, tc.preset)
			if cfg.Difficulty.Default != tc.expected {
				t.Errorf("Default = %q, expected %q", cfg.Difficulty.Default, tc.expected)
			}
		})
	}
}
