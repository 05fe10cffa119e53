package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/redlight-arcade/internal/platform/tui"
	"github.com/vovakirdan/redlight-arcade/internal/registry"
	"github.com/vovakirdan/redlight-arcade/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board [game]",
	Short: "Browse results interactively",
	Long: `Open a scrollable results board with best and recent runs.

Controls:
  Up/Down - Scroll
  Tab     - Switch between best and recent
  Q/Esc   - Quit`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBoard,
}

func runBoard(_ *cobra.Command, args []string) {
	gameID := gameArg(args)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	if err := tui.RunBoard(store, gameID, game.Title(), width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running board: %v\n", err)
		os.Exit(1)
	}
}
