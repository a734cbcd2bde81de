package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the game would use as YAML, after applying
--config and --difficulty. Save the output to ~/.platformer/configs/platformer.yaml
to customize it.

Examples:
  platformer config
  platformer config --difficulty hard > my-platformer.yaml`,
	Run: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	if flagDifficulty != "" {
		preset, err := config.ParseDifficultyPreset(flagDifficulty)
		if err != nil {
			fail("%v", err)
		}
		config.ApplyPlatformerPreset(&cfg, preset)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fail("%v", err)
	}
	//nolint:errcheck // Nothing useful to do if stdout is gone
	os.Stdout.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Println()
	}
}
