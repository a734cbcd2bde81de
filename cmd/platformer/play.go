package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the campaign",
	Long: `Start playing at the saved level, or at the given unlocked level.

Controls:
  Left/Right, A/D  - Run
  Space/Up/W       - Jump
  R                - Restart the level (after winning or losing)
  Esc              - Level overview (pauses the game)
  1-9              - Pick a level while the overview is open
  Mouse click      - Pick a level from the overview or the bottom strip
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slow patrols, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  platformer play
  platformer play 2
  platformer play --difficulty hard
  platformer play --config ./my-platformer.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	level := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > levels.Count() {
			fail("level must be a number from 1 to %d, got %q", levels.Count(), args[0])
		}
		level = n
	}

	e, err := setup(true)
	if err != nil {
		fail("%v", err)
	}

	game, err := registry.Create(platformer.ID)
	if err != nil {
		e.Close()
		fail("creating game: %v", err)
	}

	model := tui.NewModel(game, e.scores, runtimeConfig()).WithStartLevel(level)
	runErr := tui.RunModel(model)

	// Close stores before potential exit
	e.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
