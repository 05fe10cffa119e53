package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/redlight-arcade/internal/core"
	"github.com/vovakirdan/redlight-arcade/internal/games/redlight"
	"github.com/vovakirdan/redlight-arcade/internal/platform/tui"
	"github.com/vovakirdan/redlight-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in this terminal",
	Long: `Start a session in this terminal.

Controls:
  Arrows/WASD - Move (hold to keep moving)
  Space       - Stop moving
  Enter       - Start the countdown
  R           - Restart (after the run ends)
  Ctrl+S      - Save a screenshot
  Q/Esc       - Quit

Difficulty options:
  easy   - More time, faster player, short red lights
  normal - The config as loaded
  hard   - Less time, quicker and longer red lights

Examples:
  arcade play
  arcade play --difficulty easy
  arcade play --config ./my-redlight.yaml
  arcade play --seed 42 --log-file ./redlight.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := gameArg(args)

	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to --log-file or nowhere
	logger, closer, err := newLogger(io.Discard, "redlight")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	redlight.SetLogger(logger)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	runErr := tui.Run(game, cfg, tui.Options{
		Store:      store,
		KeyRelease: gameCfg.KeyRelease(),
		Logger:     logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
