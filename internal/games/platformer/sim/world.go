package sim

import (
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

// RunState is the outcome of the current level attempt.
type RunState int

const (
	Playing RunState = iota
	Won
	Lost
)

// String returns a human-readable name for the state.
func (s RunState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Coin is a static pickup.
type Coin struct {
	X, Y, W, H float64
}

// Rect returns the coin's bounding box.
func (c Coin) Rect() core.Rect {
	return core.Rect{X: c.X, Y: c.Y, W: c.W, H: c.H}
}

// Events reports what happened during one Step.
type Events struct {
	Coins  int  // coins collected this tick
	Stomps int  // enemies defeated this tick
	Won    bool // the level was completed this tick
	Lost   bool // the run ended this tick
}

// World is one attempt at one level. It owns every body in it.
// The zero value is not usable; construct with NewWorld.
type World struct {
	cfg       config.PlatformerConfig
	def       levels.Definition
	rng       *rand.Rand
	platforms []core.Rect

	player  *Player
	enemies []*Enemy
	coins   []Coin
	camera  Camera

	state RunState
	score int
	tick  uint64

	speedScale float64
	flipChance float64
}

// Tuning adjusts enemy patrol parameters at level load.
type Tuning struct {
	// Difficulty scales enemy speed and flip chance. Nil keeps base values.
	Difficulty *config.DifficultyManager
	// ProgressScore is the cumulative campaign score fed to Difficulty.
	ProgressScore int
}

// NewWorld builds a fresh attempt at def. rng drives enemy patrol turns
// and is owned by the world from here on.
func NewWorld(def levels.Definition, cfg config.PlatformerConfig, rng *rand.Rand, tuning Tuning) *World {
	w := &World{
		cfg:       cfg,
		def:       def.Clone(),
		rng:       rng,
		platforms: append([]core.Rect(nil), def.Platforms...),
	}
	w.applyTuning(tuning)
	w.load()
	return w
}

func (w *World) applyTuning(t Tuning) {
	w.speedScale = 1
	w.flipChance = w.cfg.Enemies.FlipChance
	if t.Difficulty == nil {
		return
	}
	w.speedScale = t.Difficulty.Speed(1, t.ProgressScore, w.def.ID)
	w.flipChance = t.Difficulty.FlipChance(w.flipChance, t.ProgressScore, w.def.ID)
}

// load (re)creates every body from the level definition.
func (w *World) load() {
	w.player = NewPlayer(w.def.PlayerStart.X, w.def.PlayerStart.Y, w.cfg.Player)

	w.enemies = make([]*Enemy, 0, len(w.def.Enemies))
	for _, s := range w.def.Enemies {
		speed := speedFor(s.Kind, w.cfg.Enemies) * w.speedScale
		w.enemies = append(w.enemies, NewEnemy(s.X, s.Y, s.Kind, speed, w.flipChance, w.cfg.Enemies))
	}

	w.coins = make([]Coin, 0, len(w.def.Coins))
	for _, c := range w.def.Coins {
		w.coins = append(w.coins, Coin{X: c.X, Y: c.Y, W: w.cfg.Coins.Width, H: w.cfg.Coins.Height})
	}

	w.state = Playing
	w.score = 0
	w.tick = 0
	w.updateCamera()
}

// Restart reloads the level in place. The patrol RNG keeps its sequence.
func (w *World) Restart() {
	w.load()
}

// Step advances the world by one tick. Won and Lost worlds are frozen.
func (w *World) Step(in core.InputFrame) Events {
	var ev Events
	if w.state != Playing {
		return ev
	}
	w.tick++

	phys := w.cfg.Physics
	w.player.Update(in, phys, w.platforms)
	for _, e := range w.enemies {
		e.Update(w.rng, phys.Gravity, w.platforms)
	}

	pr := w.player.Rect()
	kept := w.coins[:0]
	for _, c := range w.coins {
		if pr.Overlaps(c.Rect()) {
			w.score += w.cfg.Scoring.Coin
			ev.Coins++
			continue
		}
		kept = append(kept, c)
	}
	w.coins = kept

	// Enemies are checked in order against the live player state, so a
	// bounce from one stomp makes a second overlap in the same tick lethal.
	alive := w.enemies[:0]
	for _, e := range w.enemies {
		if w.player.Rect().Overlaps(e.Rect()) {
			if w.player.VY > 0 && w.player.Y < e.Y {
				w.player.VY = w.cfg.Scoring.StompBounce
				w.score += w.cfg.Scoring.Stomp
				ev.Stomps++
				continue
			}
			w.lose(&ev)
		}
		alive = append(alive, e)
	}
	w.enemies = alive

	if w.state == Playing && GoalReached(w.player.X, w.player.Y, w.def.Goal) {
		w.state = Won
		ev.Won = true
	}

	if w.state == Playing && w.player.Y > w.cfg.World.FallLimit {
		w.lose(&ev)
	}

	w.updateCamera()
	return ev
}

func (w *World) lose(ev *Events) {
	if w.state == Lost {
		return
	}
	w.state = Lost
	ev.Lost = true
}

// GoalReached is the win test: strictly right of and strictly above the goal point.
func GoalReached(x, y float64, goal levels.Point) bool {
	return x > goal.X && y < goal.Y
}

func (w *World) updateCamera() {
	w.camera = Follow(w.player.Body, w.cfg.Camera)
}

// State returns the run state.
func (w *World) State() RunState { return w.state }

// Score returns the run score.
func (w *World) Score() int { return w.score }

// Tick returns the number of Playing ticks simulated since load.
func (w *World) Tick() uint64 { return w.tick }

// LevelID returns the id of the loaded level.
func (w *World) LevelID() int { return w.def.ID }

// Level returns a copy of the loaded definition.
func (w *World) Level() levels.Definition { return w.def.Clone() }

// Camera returns the current camera offset.
func (w *World) Camera() Camera { return w.camera }

// Player returns a copy of the player.
func (w *World) Player() Player { return *w.player }

// EnemyCount returns the number of live enemies.
func (w *World) EnemyCount() int { return len(w.enemies) }

// CoinCount returns the number of uncollected coins.
func (w *World) CoinCount() int { return len(w.coins) }
