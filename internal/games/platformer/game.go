// Package platformer implements the side-scrolling platformer campaign.
// The simulation lives in the sim package; this package owns the level
// lifecycle around it: loading, restarts, the completion banner, the
// level overview and rendering.
package platformer

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/sim"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// ID is the registry identifier of the platformer.
const ID = "platformer"

// Options configures a Game. Zero values fall back to the package-level
// settings and then to the built-in defaults.
type Options struct {
	// Store persists campaign progress. Nil keeps progress in memory.
	Store sim.Store
	// Key names the progress record. Empty uses sim.DefaultProgressKey.
	Key    string
	Logger *log.Logger
	// Config overrides file-based configuration when set.
	Config *config.PlatformerConfig
	// Levels overrides the embedded catalog when non-empty.
	Levels []levels.Definition
}

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	progressStore    sim.Store
	progressKey      string
	defaultLogger    *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// config default.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetProgressStore sets where games created by New persist progress.
func SetProgressStore(store sim.Store, key string) {
	progressStore = store
	progressKey = key
}

// SetLogger sets the logger used by games created by New.
func SetLogger(l *log.Logger) {
	defaultLogger = l
}

// Game adapts the simulation to registry.Game and registry.LevelNavigator.
type Game struct {
	opts    Options
	logger  *log.Logger
	runtime core.RuntimeConfig

	cfg        config.PlatformerConfig
	defs       []levels.Definition
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	progress   *sim.Progression
	world      *sim.World

	completeTimer int

	overview       bool
	overviewCursor int

	// Edge detection for held keys.
	escHeld, restartHeld, leftHeld, rightHeld, jumpHeld bool

	// Last rendered screen size, used for pointer hit tests.
	layoutW, layoutH int
}

// New creates a platformer using the package-level settings.
func New() *Game {
	return NewWithOptions(Options{
		Store:  progressStore,
		Key:    progressKey,
		Logger: defaultLogger,
	})
}

// NewWithOptions creates a platformer with explicit collaborators.
// Nothing is loaded until Reset.
func NewWithOptions(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{opts: opts, logger: logger}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Rex Platformer"
}

// Reset loads configuration and saved progress, then starts the current
// level. The seed drives enemy patrol turns.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.layoutW, g.layoutH = runtime.ScreenW, runtime.ScreenH

	g.cfg = g.loadConfig()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.defs = g.opts.Levels
	if len(g.defs) == 0 {
		g.defs = levels.All()
	}

	g.rng = rand.New(rand.NewSource(runtime.Seed)) //#nosec G404 -- gameplay randomness, not security

	g.progress = sim.NewProgression(len(g.defs), g.opts.Store, g.opts.Key, g.logger)
	g.progress.Load()

	g.overview = false
	g.escHeld, g.restartHeld, g.leftHeld, g.rightHeld, g.jumpHeld = false, false, false, false, false
	g.loadLevel(g.progress.Current())
}

func (g *Game) loadConfig() config.PlatformerConfig {
	if g.opts.Config != nil {
		return *g.opts.Config
	}
	cfg, err := config.LoadPlatformer(configPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		cfg = config.DefaultPlatformerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPlatformerPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// loadLevel builds a fresh attempt at level id.
func (g *Game) loadLevel(id int) {
	def := g.defs[id-1]
	g.world = sim.NewWorld(def, g.cfg, g.rng, sim.Tuning{
		Difficulty:    g.difficulty,
		ProgressScore: g.progress.Score(),
	})
	g.completeTimer = 0
	g.logger.Info("level loaded", "level", id, "name", def.Name)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		return core.StepResult{State: g.State()}
	}

	esc := edge(in.Has(core.ActionEscape), &g.escHeld)
	restart := edge(in.Has(core.ActionRestart), &g.restartHeld)
	left := edge(in.Has(core.ActionLeft), &g.leftHeld)
	right := edge(in.Has(core.ActionRight), &g.rightHeld)
	jump := edge(in.Has(core.ActionJump), &g.jumpHeld)

	if esc {
		g.ToggleOverview()
	}

	if g.overview {
		g.stepOverview(in, left, right, jump)
		return core.StepResult{State: g.State()}
	}

	if in.Clicked {
		if id, ok := hitButton(stripButtons(g.layoutW, g.layoutH, len(g.defs)), in.Pointer); ok {
			g.SelectLevel(id)
			return core.StepResult{State: g.State()}
		}
	}

	switch g.world.State() {
	case sim.Playing:
		ev := g.world.Step(in)
		switch {
		case ev.Lost:
			g.logger.Info("run lost", "level", g.world.LevelID(), "score", g.world.Score())
		case ev.Won:
			g.onWon()
		}
	case sim.Won:
		if restart {
			g.restartLevel()
			break
		}
		g.completeTimer++
		id := g.world.LevelID()
		if g.completeTimer >= g.cfg.Flow.CompleteTicks && g.progress.HasNext(id) {
			g.progress.Select(id + 1)
			g.loadLevel(id + 1)
		}
	case sim.Lost:
		if restart {
			g.restartLevel()
		}
	}

	return core.StepResult{State: g.State()}
}

// edge reports a press that was not held on the previous tick.
func edge(down bool, held *bool) bool {
	pressed := down && !*held
	*held = down
	return pressed
}

func (g *Game) onWon() {
	id := g.world.LevelID()
	g.progress.Complete(id, g.world.Score())
	g.completeTimer = 0
	g.logger.Info("level complete", "level", id, "score", g.world.Score(), "total", g.progress.Score())
}

func (g *Game) restartLevel() {
	g.world.Restart()
	g.completeTimer = 0
	g.logger.Debug("level restarted", "level", g.world.LevelID())
}

// stepOverview handles input while the overview is open. The simulation
// is paused.
func (g *Game) stepOverview(in core.InputFrame, left, right, confirm bool) {
	n := len(g.defs)
	switch {
	case left:
		g.overviewCursor = max(g.overviewCursor-1, 1)
	case right:
		g.overviewCursor = min(g.overviewCursor+1, n)
	case confirm:
		g.SelectLevel(g.overviewCursor)
		return
	}

	if in.Clicked {
		if id, ok := hitButton(overviewButtons(g.layoutW, g.layoutH, n), in.Pointer); ok {
			g.overviewCursor = id
			g.SelectLevel(id)
		}
	}
}

// SelectLevel switches to level id if it is unlocked. The overview closes
// on success; locked or unknown levels are ignored.
func (g *Game) SelectLevel(id int) bool {
	if g.progress == nil || !g.progress.Select(id) {
		return false
	}
	g.loadLevel(id)
	g.overview = false
	return true
}

// ToggleOverview opens or closes the level overview.
func (g *Game) ToggleOverview() {
	g.overview = !g.overview
	if g.overview && g.world != nil {
		g.overviewCursor = g.world.LevelID()
	}
}

// OverviewOpen reports whether the level overview is shown.
func (g *Game) OverviewOpen() bool {
	return g.overview
}

// Levels lists the campaign with its progression state.
func (g *Game) Levels() []registry.LevelInfo {
	defs := g.defs
	if len(defs) == 0 {
		defs = levels.All()
	}
	current := 0
	if g.world != nil {
		current = g.world.LevelID()
	}

	out := make([]registry.LevelInfo, 0, len(defs))
	for _, d := range defs {
		info := registry.LevelInfo{ID: d.ID, Name: d.Name, Current: d.ID == current}
		if g.progress != nil {
			info.Unlocked = g.progress.IsUnlocked(d.ID)
			info.Completed = g.progress.IsCompleted(d.ID)
		}
		out = append(out, info)
	}
	return out
}

// Snapshot returns the post-tick view of the current level.
func (g *Game) Snapshot() sim.Snapshot {
	if g.world == nil {
		return sim.Snapshot{}
	}
	return g.world.Snapshot(len(g.defs))
}

// Progress returns the campaign progression.
func (g *Game) Progress() *sim.Progression {
	return g.progress
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.world.Score(),
		Level:    g.world.LevelID(),
		GameOver: g.world.State() == sim.Lost,
		Won:      g.world.State() == sim.Won,
		Paused:   g.overview,
	}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
