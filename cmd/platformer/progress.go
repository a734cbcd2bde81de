package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/sim"
)

var flagReset bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset saved progress",
	Long: `Show the saved campaign progress from the store picked by --save.

Examples:
  platformer progress
  platformer progress --reset
  platformer progress --save gdata --reset`,
	Run: runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Discard all progress and start over at level 1")
}

func runProgress(_ *cobra.Command, _ []string) {
	e, err := setup(false)
	if err != nil {
		fail("%v", err)
	}
	defer e.Close()

	if e.progress == nil {
		e.Close()
		fail("no progress store available (check --db and --save)")
	}

	p := sim.NewProgression(levels.Count(), e.progress, sim.DefaultProgressKey, e.logger)
	p.Load()

	if flagReset {
		p.Reset()
		fmt.Println("Progress reset.")
	}

	st := p.State()
	fmt.Printf("Store:     %s\n", flagSave)
	fmt.Printf("Current:   level %d of %d\n", st.CurrentLevel, p.Total())
	fmt.Printf("Unlocked:  %v\n", st.UnlockedLevels)
	fmt.Printf("Completed: %v\n", st.CompletedLevels)
	fmt.Printf("Score:     %d\n", st.Score)
}
