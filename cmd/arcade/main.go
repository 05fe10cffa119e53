// arcade runs Red Light, Green Light in the terminal, over SSH and in the browser.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play [game]       - Play in this terminal
//	arcade serve             - Start SSH server for remote play
//	arcade web               - Start websocket server for browsers
//	arcade scores [game]     - Print results and stats
//	arcade board [game]      - Browse results interactively
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible light timings
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--config <path>      - Use a custom game config YAML
//	--difficulty <name>  - Apply a preset: easy, normal, hard
//	--log-file <path>    - Write session logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/redlight-arcade/internal/games/redlight"
)

const defaultGameID = "redlight"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Red Light, Green Light - move on green, freeze on red",
	Long: `Red Light, Green Light is a reaction game: cross the field to the
finish zone while the light is green and stand still while it is red.
Moving on red, or running out of time, ends the run.

Available commands:
  list     - Show all available games
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  web      - Start websocket server for browsers
  scores   - Print results and stats
  board    - Browse results interactively

Examples:
  arcade play
  arcade play --difficulty hard
  arcade serve --ssh :2222
  arcade web --addr :8080
  arcade scores`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
}
