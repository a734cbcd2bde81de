package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores",
	Long: `Display the top 10 finished runs, optionally for a single level.

Examples:
  platformer scores
  platformer scores 2`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(_ *cobra.Command, args []string) {
	level := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > levels.Count() {
			fail("level must be a number from 1 to %d, got %q", levels.Count(), args[0])
		}
		level = n
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	all, err := store.AllScores(platformer.ID)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	var scores []storage.ScoreEntry
	for _, s := range all {
		if level != 0 && s.Level != level {
			continue
		}
		scores = append(scores, s)
		if len(scores) == 10 {
			break
		}
	}

	title := "High Scores - all levels"
	if def, ok := levels.Get(level); ok {
		title = fmt.Sprintf("High Scores - Level %d: %s", def.ID, def.Name)
	}
	fmt.Println(title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'platformer play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-5s  %-12s  %s\n", "Rank", "Score", "Level", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-12s  %s\n", "----", "-----", "-----", "------", "----")

	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "local"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-5d  %-12s  %s\n", i+1, entry.Score, entry.Level, player, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(platformer.ID); err == nil {
		fmt.Printf("Best: %d   Runs: %d   Average: %.0f\n", stats.HighScore, stats.RunsCount, stats.AvgScore)
	}
}
