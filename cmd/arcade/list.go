package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/redlight-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game and the current session settings.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	idStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	width := 0
	for _, g := range games {
		width = max(width, len(g.ID))
	}

	fmt.Println("Available games:")
	fmt.Println()
	for _, g := range games {
		pad := strings.Repeat(" ", width-len(g.ID))
		fmt.Printf("  %s%s  %s\n", idStyle.Render(g.ID), pad, g.Title)
	}

	if cfg, err := loadGameConfig(); err == nil {
		fmt.Println()
		fmt.Println(dimStyle.Render(fmt.Sprintf(
			"  %dx%d field, %ds on the clock, %ds countdown, speed %d per %dms tick",
			cfg.Field.Width, cfg.Field.Height, cfg.Timing.BudgetSeconds,
			cfg.Timing.PreRollSeconds, cfg.Player.SpeedPerTick, cfg.Timing.TickPeriodMs,
		)))
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
