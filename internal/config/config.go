// Package config provides YAML-based game configuration loading,
// validation and difficulty presets for the arcade platform.
package config

import (
	"time"

	"github.com/vovakirdan/redlight-arcade/internal/core"
)

// RedLightConfig contains all configuration for Red Light, Green Light.
type RedLightConfig struct {
	Field  FieldConfig  `yaml:"field"`
	Player PlayerConfig `yaml:"player"`
	Timing TimingConfig `yaml:"timing"`
	Input  InputConfig  `yaml:"input"`
}

// FieldConfig describes the playfield geometry in playfield units.
type FieldConfig struct {
	Width  int         `yaml:"width"`
	Height int         `yaml:"height"`
	Margin int         `yaml:"margin"` // Inset from every edge the player cannot cross
	Start  PointConfig `yaml:"start"`
	Finish RectConfig  `yaml:"finish"`
	Guard  PointConfig `yaml:"guard"`
}

// PointConfig is a position in playfield units.
type PointConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// RectConfig is a rectangle in playfield units.
type RectConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// PlayerConfig defines player movement.
type PlayerConfig struct {
	SpeedPerTick int `yaml:"speed_per_tick"`
}

// TimingConfig defines every duration of a session.
type TimingConfig struct {
	TickPeriodMs   int         `yaml:"tick_period_ms"`
	PreRollSeconds int         `yaml:"pre_roll_seconds"`
	BudgetSeconds  int         `yaml:"budget_seconds"`
	WarmupMs       int         `yaml:"warmup_ms"` // Delay before the first light toggle
	GreenMs        RangeConfig `yaml:"green_ms"`
	RedMs          RangeConfig `yaml:"red_ms"`
}

// RangeConfig is a half-open millisecond range [Min, Max).
type RangeConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// InputConfig tunes the terminal input adapter.
type InputConfig struct {
	// KeyReleaseMs is how long a direction stays held after its last key
	// repeat. Terminals report presses only.
	KeyReleaseMs int `yaml:"key_release_ms"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value to a preset. Empty or unknown values
// return "" which means "use the config as loaded".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// Bounds returns the inclusive area the player may occupy.
func (c RedLightConfig) Bounds() core.Bounds {
	return core.Inset(c.Field.Width, c.Field.Height, c.Field.Margin)
}

// FieldRect returns the whole playfield as a rectangle.
func (c RedLightConfig) FieldRect() core.Rect {
	return core.NewRect(0, 0, c.Field.Width, c.Field.Height)
}

// FinishRect returns the goal rectangle.
func (c RedLightConfig) FinishRect() core.Rect {
	f := c.Field.Finish
	return core.NewRect(f.X, f.Y, f.W, f.H)
}

// StartPoint returns the player's spawn position.
func (c RedLightConfig) StartPoint() core.Point {
	return core.Point{X: c.Field.Start.X, Y: c.Field.Start.Y}
}

// GuardPoint returns where the guard stands.
func (c RedLightConfig) GuardPoint() core.Point {
	return core.Point{X: c.Field.Guard.X, Y: c.Field.Guard.Y}
}

// TickPeriod returns the simulation tick period.
func (c RedLightConfig) TickPeriod() time.Duration {
	return time.Duration(c.Timing.TickPeriodMs) * time.Millisecond
}

// Warmup returns the delay before the first light toggle.
func (c RedLightConfig) Warmup() time.Duration {
	return time.Duration(c.Timing.WarmupMs) * time.Millisecond
}

// KeyRelease returns the synthesized key release delay.
func (c RedLightConfig) KeyRelease() time.Duration {
	return time.Duration(c.Input.KeyReleaseMs) * time.Millisecond
}

// Durations converts the range to durations.
func (r RangeConfig) Durations() (lo, hi time.Duration) {
	return time.Duration(r.Min) * time.Millisecond, time.Duration(r.Max) * time.Millisecond
}
