package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/redlight-arcade/internal/core"
	"github.com/vovakirdan/redlight-arcade/internal/registry"
	"github.com/vovakirdan/redlight-arcade/internal/storage"
)

// DefaultKeyRelease is used when Options.KeyRelease is zero.
const DefaultKeyRelease = 550 * time.Millisecond

// Options configures a Model.
type Options struct {
	Store      *storage.Store // nil disables result saving
	KeyRelease time.Duration  // how long a direction stays held without a repeat
	Logger     *log.Logger
}

// Model is the Bubble Tea model for running an arcade game.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store
	logger      *log.Logger
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	inputFrame  core.InputFrame
	gameState   core.GameState
	lastTick    time.Time
	quitting    bool
	resultSaved bool // Whether the result has been saved for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.KeyRelease <= 0 {
		opts.KeyRelease = DefaultKeyRelease
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		logger:     opts.Logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(opts.KeyRelease),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The field is scaled to the screen, so the session survives a resize
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch m.keyMapper.MapKeyToFrame(msg, time.Now(), &m.inputFrame) {
	case core.ActionQuit, core.ActionBack:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick runs one platform frame covering the time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.keyMapper.Expire(now, &m.inputFrame)
	m.inputFrame.Elapsed = frameElapsed(m.lastTick, now)
	m.lastTick = now

	result := m.game.Step(m.inputFrame)
	if m.gameState.GameOver && !result.State.GameOver {
		m.resultSaved = false
	}
	m.gameState = result.State

	// Save result on game over (once)
	if m.gameState.GameOver && !m.resultSaved {
		m.saveResult()
		m.resultSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveResult stores the finished session. Failures are logged and the game continues.
func (m Model) saveResult() {
	st := m.gameState
	outcome := storage.OutcomeLost
	if st.Won {
		outcome = storage.OutcomeWon
	}
	m.logger.Info("session finished",
		"game", m.game.ID(),
		"outcome", outcome,
		"reason", st.Reason,
		"remaining", st.Remaining,
		"elapsed", st.Elapsed,
	)

	if m.store == nil {
		return
	}
	_, err := m.store.SaveResult(storage.Result{
		GameID:           m.game.ID(),
		Outcome:          outcome,
		Reason:           st.Reason,
		SecondsRemaining: st.Remaining,
		ElapsedMs:        st.Elapsed.Milliseconds(),
	})
	if err != nil {
		m.logger.Error("could not save result", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// GameState returns the state reported by the last frame.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
