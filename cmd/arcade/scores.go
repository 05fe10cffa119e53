package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/redlight-arcade/internal/registry"
	"github.com/vovakirdan/redlight-arcade/internal/storage"
)

var (
	flagScoresRecent bool
	flagScoresLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Print results and stats for a game",
	Long: `Display stats and the best finished runs (most time left first).

Examples:
  arcade scores
  arcade scores --recent
  arcade scores --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs, won or lost")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := gameArg(args)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var results []storage.Result
	if flagScoresRecent {
		results, err = store.RecentResults(gameID, flagScoresLimit)
	} else {
		results, err = store.TopResults(gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Results - %s\n", title)
	fmt.Println()

	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Played %d, won %d (%.0f%%), caught %d, timed out %d\n",
			stats.GamesCount, stats.Wins, stats.WinRate()*100, stats.Caught, stats.Timeouts)
		if p, err := store.Progress(gameID); err == nil && p.ClearedCount > 0 {
			fmt.Printf("Stage cleared %d times, last on %s\n", p.ClearedCount, p.LastClearedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}

	if len(results) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first result!\n", gameID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-8s  %-8s  %s\n", "Rank", "Outcome", "Left", "Played", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-8s  %s\n", "----", "-------", "----", "------", "----")

	for i, r := range results {
		outcome := r.Outcome
		if r.Reason != "" {
			outcome = r.Reason
		}
		fmt.Printf("  %-4d  %-8s  %-8s  %-8s  %s\n",
			i+1,
			outcome,
			fmt.Sprintf("%ds", r.SecondsRemaining),
			fmt.Sprintf("%.1fs", float64(r.ElapsedMs)/1000),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
}
