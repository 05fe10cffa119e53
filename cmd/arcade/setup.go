package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/redlight-arcade/internal/config"
	"github.com/vovakirdan/redlight-arcade/internal/games/redlight"
	"github.com/vovakirdan/redlight-arcade/internal/registry"
	"github.com/vovakirdan/redlight-arcade/internal/storage"
)

// gameArg returns the game named on the command line, or the default.
// Unknown games exit with a hint.
func gameArg(args []string) string {
	gameID := defaultGameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
	return gameID
}

// loadGameConfig applies --config and --difficulty, validates the result
// and passes the same settings to sessions created through the registry.
func loadGameConfig() (config.RedLightConfig, error) {
	cfg, err := config.LoadRedLight(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyRedLightPreset(&cfg, config.ParsePreset(flagDifficulty))
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	redlight.SetConfigPath(flagConfig)
	redlight.SetDifficultyPreset(flagDifficulty)
	return cfg, nil
}

// newLogger writes to --log-file when set, otherwise to fallback.
// The returned closer must be called on exit.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, io.Closer, error) {
	out := fallback
	var closer io.Closer = io.NopCloser(nil)
	level := log.InfoLevel

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, f
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// openStore opens the results database. Failures are reported and play
// continues without saving.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		return nil
	}
	redlight.SetProgressNotifier(store)
	return store
}
