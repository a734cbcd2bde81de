// platformer is a side-scrolling jungle platformer for the terminal.
//
// Usage:
//
//	platformer play [level]     - Play the campaign
//	platformer menu             - Start menu with level picker and scores
//	platformer levels           - List levels with their progress
//	platformer scores [level]   - Show high scores
//	platformer progress         - Show or reset saved progress
//	platformer serve            - Start SSH server for remote play
//	platformer config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible enemy patrols
//	--db <path>           - Set database path (default: ~/.platformer/platformer.db)
//	--save <store>        - Progress store: sqlite or gdata
//	--config <path>       - Custom config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log <path>          - Log file for interactive play
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/sim"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Progress store backends selectable with --save.
const (
	saveSQLite = "sqlite"
	saveGData  = "gdata"
)

// gdataAppName names the gdata application directory.
const gdataAppName = "rex-platformer"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagSave       string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Rex - a side-scrolling platformer in your terminal",
	Long: `Guide Rex through the jungle, the swamp and the mountains.
Collect coins, stomp enemies and reach the goal to unlock the next level.

Available commands:
  play      - Play the campaign directly
  menu      - Interactive menu with level picker and scores
  levels    - Show all levels and their progress
  scores    - View high scores
  progress  - Show or reset saved progress
  serve     - Start SSH server for remote play
  config    - Print the effective configuration

Examples:
  platformer play
  platformer play 2 --difficulty hard
  platformer menu --save gdata
  platformer serve --ssh :2222
  platformer scores 1`,
}

func init() {
	defaultDB := "~/" + config.AppDir + "/platformer.db"

	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDB, "Path to scores and progress database")
	rootCmd.PersistentFlags().StringVar(&flagSave, "save", saveSQLite, "Progress store: sqlite or gdata")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Log file for interactive play (default ~/.platformer/platformer.log)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// env holds what every command shares: the logger and the stores.
type env struct {
	logger   *log.Logger
	scores   *storage.Store // nil when the database cannot be opened
	progress sim.Store      // nil keeps progress in memory
	closers  []func()
}

// setup validates the global flags, opens the stores and configures the
// platformer package. Interactive commands log to a file because the
// alternate screen owns the terminal.
func setup(interactive bool) (*env, error) {
	if flagSave != saveSQLite && flagSave != saveGData {
		return nil, fmt.Errorf("unknown --save store %q (want %s or %s)", flagSave, saveSQLite, saveGData)
	}
	if flagDifficulty != "" {
		if _, err := config.ParseDifficultyPreset(flagDifficulty); err != nil {
			return nil, err
		}
	}

	e := &env{}
	e.logger = e.openLogger(interactive)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		e.logger.Warn("could not open database, scores will not be saved", "path", flagDBPath, "err", err)
	} else {
		e.scores = store
		e.closers = append(e.closers, func() { store.Close() })
	}

	switch flagSave {
	case saveGData:
		gd, gdErr := storage.OpenGData(gdataAppName)
		if gdErr != nil {
			e.logger.Warn("could not open gdata store, falling back to sqlite", "err", gdErr)
			break
		}
		e.progress = gd
	}
	if e.progress == nil && e.scores != nil {
		e.progress = e.scores
	}

	platformer.SetConfigPath(flagConfig)
	platformer.SetDifficultyPreset(flagDifficulty)
	platformer.SetProgressStore(e.progress, sim.DefaultProgressKey)
	platformer.SetLogger(e.logger)

	return e, nil
}

// openLogger returns a file logger for interactive play and a stderr
// logger otherwise. A file that cannot be opened silences logging.
func (e *env) openLogger(interactive bool) *log.Logger {
	var w io.Writer = os.Stderr
	if interactive {
		w = io.Discard
		path := flagLogPath
		if path == "" {
			if home, err := os.UserHomeDir(); err == nil {
				path = filepath.Join(home, config.AppDir, "platformer.log")
			}
		}
		if path != "" {
			//nolint:errcheck // Best-effort directory creation
			os.MkdirAll(filepath.Dir(path), 0o755)
			f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //#nosec G304 -- path comes from the user's own flag
			if err == nil {
				w = f
				e.closers = append(e.closers, func() { f.Close() })
			}
		}
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
	})
}

// Close releases the stores and the log file.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
