package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file looked up in the user and local config directories.
const ConfigFileName = "ostrich.yaml"

// LoadOstrich loads the game configuration.
// Search order: customPath -> ~/.ostrich/configs/ostrich.yaml -> ./configs/ostrich.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides the keys it names.
func LoadOstrich(customPath string) (OstrichConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultOstrichConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultOstrichConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(ConfigFileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", ConfigFileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultOstrichYAML)
	if err != nil {
		return DefaultOstrichConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes a YAML document over the built-in defaults and validates it.
func Parse(data []byte) (OstrichConfig, error) {
	cfg := DefaultOstrichConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ostrich", "configs", filename)
}

// ApplyDifficultyPreset sets the starting difficulty tier.
// An empty preset keeps the configured default; an unknown one selects the
// configured default as well.
func ApplyDifficultyPreset(cfg *OstrichConfig, preset string) {
	if preset == "" {
		return
	}
	if tier, ok := ParseTier(preset); ok {
		cfg.Difficulty.Default = string(tier)
	}
}
