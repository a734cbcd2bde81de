package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/sim"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels and their progress",
	Long:  `Shows the level catalog with lock and completion state from the saved progress.`,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	e, err := setup(false)
	if err != nil {
		fail("%v", err)
	}
	defer e.Close()

	defs := levels.All()
	progress := sim.NewProgression(len(defs), e.progress, sim.DefaultProgressKey, e.logger)
	progress.Load()

	var best map[int]int
	if e.scores != nil {
		best, _ = e.scores.BestPerLevel(platformer.ID) // Best column is optional
	}

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, d := range defs {
		maxNameLen = max(maxNameLen, len(d.Name))
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-2s  %-*s  %-10s  %-9s  %s\n", "ID", maxNameLen, "Name", "Background", "Status", "Best")
	fmt.Printf("  %-2s  %-*s  %-10s  %-9s  %s\n", "--", maxNameLen, "----", "----------", "------", "----")

	for _, d := range defs {
		status := progress.Status(d.ID).String()
		if d.ID == progress.Current() {
			status += "*"
		}
		bestStr := "-"
		if score, ok := best[d.ID]; ok {
			bestStr = fmt.Sprintf("%d", score)
		}
		fmt.Printf("  %-2d  %-*s  %-10s  %-9s  %s\n", d.ID, maxNameLen, d.Name, d.Background, status, bestStr)
	}

	fmt.Println()
	fmt.Printf("Campaign score: %d   (* = current level)\n", progress.Score())
	fmt.Println("Run 'platformer play <id>' to play an unlocked level.")
}
