package redlight

import (
	"time"

	"github.com/vovakirdan/redlight-arcade/internal/config"
)

// lowRange always returns the lower bound and records every request.
type lowRange struct {
	calls []PhaseRange
}

func (r *lowRange) Between(lo, hi time.Duration) time.Duration {
	r.calls = append(r.calls, PhaseRange{Min: lo, Max: hi})
	return lo
}

// testConfig is a small field where the finish is 31 ticks to the right of the start.
func testConfig() config.RedLightConfig {
	return config.RedLightConfig{
		Field: config.FieldConfig{
			Width:  200,
			Height: 200,
			Margin: 5,
			Start:  config.PointConfig{X: 10, Y: 100},
			Finish: config.RectConfig{X: 100, Y: 90, W: 20, H: 20},
			Guard:  config.PointConfig{X: 100, Y: 20},
		},
		Player: config.PlayerConfig{SpeedPerTick: 3},
		Timing: config.TimingConfig{
			TickPeriodMs:   30,
			PreRollSeconds: 3,
			BudgetSeconds:  10,
			WarmupMs:       5000,
			GreenMs:        config.RangeConfig{Min: 3000, Max: 7000},
			RedMs:          config.RangeConfig{Min: 2000, Max: 5000},
		},
		Input: config.InputConfig{KeyReleaseMs: 550},
	}
}
