package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/redlight-arcade/internal/core"
)

// ErrInvalidConfig is wrapped by every error returned from Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the configuration describes a playable session.
// All problems are reported together.
func (c RedLightConfig) Validate() error {
	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	f := c.Field
	if f.Width <= 0 || f.Height <= 0 {
		add("field size %dx%d must be positive", f.Width, f.Height)
	}
	if f.Margin < 0 {
		add("field margin %d must not be negative", f.Margin)
	}
	bounds := c.Bounds()
	if !bounds.Valid() {
		add("margin %d leaves no room on a %dx%d field", f.Margin, f.Width, f.Height)
	}

	finish := c.FinishRect()
	if finish.Empty() {
		add("finish zone %dx%d must have positive size", finish.W, finish.H)
	} else if !finish.Within(c.FieldRect()) {
		add("finish zone (%d,%d %dx%d) lies outside the field", finish.X, finish.Y, finish.W, finish.H)
	}
	if !finish.Empty() && bounds.Valid() && !reachable(finish, bounds) {
		add("finish zone (%d,%d %dx%d) has no interior point the player can reach", finish.X, finish.Y, finish.W, finish.H)
	}

	start := c.StartPoint()
	if bounds.Valid() && !bounds.Has(start) {
		add("start (%d,%d) lies outside the playable bounds", start.X, start.Y)
	}
	if !finish.Empty() && finish.Interior(start.X, start.Y) {
		add("start (%d,%d) lies inside the finish zone", start.X, start.Y)
	}

	if c.Player.SpeedPerTick <= 0 {
		add("player speed %d must be positive", c.Player.SpeedPerTick)
	}

	t := c.Timing
	if t.TickPeriodMs <= 0 {
		add("tick period %dms must be positive", t.TickPeriodMs)
	}
	if t.PreRollSeconds < 0 {
		add("pre-roll %ds must not be negative", t.PreRollSeconds)
	}
	if t.BudgetSeconds <= 0 {
		add("session budget %ds must be positive", t.BudgetSeconds)
	}
	if t.WarmupMs < 0 {
		add("warm-up %dms must not be negative", t.WarmupMs)
	}
	if err := t.GreenMs.validate("green"); err != nil {
		problems = append(problems, err)
	}
	if err := t.RedMs.validate("red"); err != nil {
		problems = append(problems, err)
	}

	if c.Input.KeyReleaseMs < 0 {
		add("key release %dms must not be negative", c.Input.KeyReleaseMs)
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(problems...))
}

// validate checks 0 < Min <= Max. Min == Max always yields Min.
func (r RangeConfig) validate(name string) error {
	if r.Min <= 0 {
		return fmt.Errorf("%s range min %dms must be positive", name, r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%s range [%d, %d) is inverted", name, r.Min, r.Max)
	}
	return nil
}

// reachable reports whether some integer point lies strictly inside r and
// within b. Only such points count as reaching the finish.
func reachable(r core.Rect, b core.Bounds) bool {
	minX, maxX := max(r.X+1, b.MinX), min(r.Right()-1, b.MaxX)
	minY, maxY := max(r.Y+1, b.MinY), min(r.Bottom()-1, b.MaxY)
	return minX <= maxX && minY <= maxY
}
