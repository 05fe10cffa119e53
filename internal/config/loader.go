package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRedLight loads Red Light, Green Light configuration.
// Search order: customPath -> ~/.arcade/configs/redlight.yaml -> ./configs/redlight.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it names.
func LoadRedLight(customPath string) (RedLightConfig, error) {
	cfg := DefaultRedLightConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("redlight.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := DefaultRedLightConfig()
			if err := yaml.Unmarshal(data, &candidate); err == nil {
				return candidate, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "redlight.yaml")); err == nil {
		candidate := DefaultRedLightConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultRedLightYAML, &cfg); err != nil {
		return DefaultRedLightConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyRedLightPreset modifies the config based on a difficulty preset.
// Normal and empty presets leave the config untouched.
func ApplyRedLightPreset(cfg *RedLightConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.BudgetSeconds = 90
		cfg.Player.SpeedPerTick = 4
		cfg.Timing.GreenMs = RangeConfig{Min: 4000, Max: 8000}
		cfg.Timing.RedMs = RangeConfig{Min: 2000, Max: 4000}
	case DifficultyHard:
		cfg.Timing.BudgetSeconds = 45
		cfg.Timing.WarmupMs = 3000
		cfg.Timing.GreenMs = RangeConfig{Min: 2000, Max: 5000}
		cfg.Timing.RedMs = RangeConfig{Min: 2000, Max: 6000}
	}
}
