package redlight

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/redlight-arcade/internal/config"
	"github.com/vovakirdan/redlight-arcade/internal/core"
	"github.com/vovakirdan/redlight-arcade/internal/registry"
)

// GameID is the registry and storage key for this game.
const GameID = "redlight"

// Package-level settings applied on the next Reset (like the CLI flags they come from).
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	progress         ProgressNotifier
	logger           *log.Logger
)

// SetConfigPath sets a custom YAML config path. Empty uses the default search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset selects easy, normal or hard. Unknown values are ignored.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetProgressNotifier sets who is told about cleared stages.
func SetProgressNotifier(p ProgressNotifier) {
	progress = p
}

// SetLogger sets the logger used by new sessions.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game adapts a Session to the platform's frame loop.
// Each Step advances the session clock by the frame's wall time.
type Game struct {
	cfg     config.RedLightConfig
	clock   *core.ManualClock
	session *Session
	frame   time.Duration
	err     error // configuration problem; shown instead of the field
}

// New creates an unstarted game. Call Reset before use.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Red Light, Green Light"
}

// Reset loads the configuration and builds a fresh idle session.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if g.session != nil {
		g.session.Close()
	}
	g.session = nil
	g.err = nil

	g.frame = time.Second / 60
	if rc.TickRate > 0 {
		g.frame = time.Second / time.Duration(rc.TickRate)
	}

	cfg, err := config.LoadRedLight(configPath)
	if err != nil {
		g.err = err
		return
	}
	config.ApplyRedLightPreset(&cfg, difficultyPreset)
	g.cfg = cfg

	g.clock = core.NewManualClock()
	g.session, g.err = NewSession(cfg, Options{
		GameID:   GameID,
		Clock:    g.clock,
		Random:   NewRandomRange(rc.Seed),
		Progress: progress,
		Logger:   logger,
	})
}

// Step applies the frame's input and advances the clock by its elapsed time.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionFreeze) {
		g.session.ReleaseAll()
	}
	g.session.Apply(in.Edges)
	if in.Has(core.ActionRestart) {
		g.session.Restart()
	}
	if in.Has(core.ActionStart) {
		g.session.Start()
	}

	dt := in.Elapsed
	if dt <= 0 {
		dt = g.frame
	}
	g.clock.Advance(dt)

	return core.StepResult{State: g.State()}
}

// State reports the outcome to the platform. Score is the whole seconds
// left on the clock when the player reached the finish.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	snap := g.session.Snapshot()
	st := core.GameState{
		GameOver:  snap.State.Terminal(),
		Won:       snap.State == StateWon,
		Reason:    string(snap.Reason),
		Remaining: snap.SecondsRemaining,
		Elapsed:   time.Duration(snap.ElapsedMs) * time.Millisecond,
	}
	if st.Won {
		st.Score = snap.SecondsRemaining
	}
	return st
}

// Session exposes the underlying session, nil when the config was rejected.
func (g *Game) Session() *Session {
	return g.session
}

// Err returns the configuration error from the last Reset.
func (g *Game) Err() error {
	return g.err
}

// Close stops the session's timers.
func (g *Game) Close() {
	if g.session != nil {
		g.session.Close()
	}
}
