package config

import (
	_ "embed"
)

//go:embed defaults/redlight.yaml
var defaultRedLightYAML []byte

// DefaultRedLightConfig returns the default Red Light, Green Light configuration.
// Values match the embedded defaults/redlight.yaml.
func DefaultRedLightConfig() RedLightConfig {
	return RedLightConfig{
		Field: FieldConfig{
			Width:  600,
			Height: 600,
			Margin: 20,
			Start:  PointConfig{X: 50, Y: 400},
			Finish: RectConfig{X: 550, Y: 50, W: 30, H: 100},
			Guard:  PointConfig{X: 300, Y: 150},
		},
		Player: PlayerConfig{
			SpeedPerTick: 3,
		},
		Timing: TimingConfig{
			TickPeriodMs:   30,
			PreRollSeconds: 3,
			BudgetSeconds:  60,
			WarmupMs:       5000,
			GreenMs:        RangeConfig{Min: 3000, Max: 7000},
			RedMs:          RangeConfig{Min: 2000, Max: 5000},
		},
		Input: InputConfig{
			KeyReleaseMs: 550,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "redlight":
		return defaultRedLightYAML
	default:
		return nil
	}
}
