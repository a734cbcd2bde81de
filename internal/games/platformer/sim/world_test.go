package sim

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

// flatLevel is a single endless floor with its top at y=550.
func flatLevel() levels.Definition {
	return levels.Definition{
		ID:          1,
		Name:        "Flat",
		PlayerStart: levels.Point{X: 100, Y: 500},
		Goal:        levels.Point{X: 100000, Y: 0},
		Platforms:   []core.Rect{core.NewRect(-10000, 550, 200000, 50)},
	}
}

func noFlipConfig() config.PlatformerConfig {
	cfg := config.DefaultPlatformerConfig()
	cfg.Enemies.FlipChance = 0
	return cfg
}

func newTestWorld(def levels.Definition, cfg config.PlatformerConfig) *World {
	return NewWorld(def, cfg, rand.New(rand.NewSource(42)), Tuning{})
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestWorldStartsFresh(t *testing.T) {
	def, _ := levels.Get(1)
	w := newTestWorld(def, config.DefaultPlatformerConfig())

	if w.State() != Playing || w.Score() != 0 {
		t.Errorf("fresh world: state %v score %d", w.State(), w.Score())
	}
	if w.EnemyCount() != 5 || w.CoinCount() != 10 {
		t.Errorf("fresh world: %d enemies, %d coins", w.EnemyCount(), w.CoinCount())
	}
	p := w.Player()
	if p.X != 100 || p.Y != 400 || p.W != 40 || p.H != 50 {
		t.Errorf("player spawned at %+v", p.Body)
	}
}

// Scenario A: walking right past the goal wins the level and the win
// unlocks the next one.
func TestScenarioWinUnlocksNextLevel(t *testing.T) {
	def := flatLevel()
	def.Goal = levels.Point{X: 400, Y: 600}
	def.Coins = []levels.Point{{X: 200, Y: 520}, {X: 300, Y: 520}}
	w := newTestWorld(def, config.DefaultPlatformerConfig())

	var won bool
	for i := 0; i < 500 && !won; i++ {
		ev := w.Step(frame(core.ActionRight))
		won = ev.Won
	}
	if !won || w.State() != Won {
		t.Fatalf("player never won, state %v", w.State())
	}
	if w.Score() != 200 {
		t.Errorf("score = %d, expected both coins (200)", w.Score())
	}
	p := w.Player()
	if !GoalReached(p.X, p.Y, def.Goal) {
		t.Errorf("won without reaching the goal: %+v", p.Body)
	}

	prog := NewProgression(3, nil, "", nil)
	prog.Complete(w.LevelID(), w.Score())
	if !prog.IsUnlocked(2) {
		t.Error("level 2 should unlock after winning level 1")
	}
	if prog.Score() != 200 {
		t.Errorf("progression score = %d", prog.Score())
	}
}

// Scenario B: touching an enemy without descending onto it is lethal and
// the enemy survives.
func TestScenarioSideHitLoses(t *testing.T) {
	def := flatLevel()
	def.Enemies = []levels.EnemySpawn{{X: 110, Y: 510, Kind: levels.EnemyFast}}
	w := newTestWorld(def, noFlipConfig())

	ev := w.Step(frame())

	if !ev.Lost || w.State() != Lost {
		t.Fatalf("expected Lost, got %v", w.State())
	}
	if w.EnemyCount() != 1 {
		t.Error("enemy must not be removed on a lethal hit")
	}
	if w.Score() != 0 {
		t.Errorf("score = %d, expected 0", w.Score())
	}
	if p := w.Player(); p.VY > 0 {
		t.Errorf("fixture: player should not be descending, VY = %v", p.VY)
	}
}

// Scenario C: landing on an enemy from above defeats it and bounces.
func TestScenarioStomp(t *testing.T) {
	def := flatLevel()
	def.PlayerStart = levels.Point{X: 100, Y: 400}
	def.Enemies = []levels.EnemySpawn{{X: 110, Y: 510, Kind: levels.EnemyFast}}
	w := newTestWorld(def, noFlipConfig())

	var ev Events
	for i := 0; i < 100 && ev.Stomps == 0; i++ {
		ev = w.Step(frame())
		if w.State() != Playing {
			t.Fatalf("tick %d: state %v before stomp", i, w.State())
		}
	}
	if ev.Stomps != 1 {
		t.Fatal("enemy was never stomped")
	}
	if w.EnemyCount() != 0 {
		t.Error("stomped enemy should be removed")
	}
	if w.Score() != 200 {
		t.Errorf("score = %d, expected 200", w.Score())
	}
	if p := w.Player(); p.VY != -15 {
		t.Errorf("player VY = %v, expected bounce -15", p.VY)
	}
	if w.State() != Playing {
		t.Errorf("state = %v, expected Playing", w.State())
	}
}

func TestStompBounceMakesSecondOverlapLethal(t *testing.T) {
	def := flatLevel()
	def.PlayerStart = levels.Point{X: 100, Y: 400}
	def.Enemies = []levels.EnemySpawn{
		{X: 110, Y: 510, Kind: levels.EnemyFast},
		{X: 112, Y: 510, Kind: levels.EnemyFast},
	}
	w := newTestWorld(def, noFlipConfig())

	for i := 0; i < 100 && w.State() == Playing; i++ {
		w.Step(frame())
	}
	if w.State() != Lost {
		t.Fatalf("state = %v, expected Lost", w.State())
	}
	if w.Score() != 200 || w.EnemyCount() != 1 {
		t.Errorf("score %d, enemies %d: first enemy stomped, second lethal", w.Score(), w.EnemyCount())
	}
}

func TestCoinCollectedOnce(t *testing.T) {
	def := flatLevel()
	def.Coins = []levels.Point{{X: 150, Y: 520}}
	w := newTestWorld(def, config.DefaultPlatformerConfig())

	total := 0
	for i := 0; i < 100; i++ {
		ev := w.Step(frame(core.ActionRight))
		total += ev.Coins
	}
	if total != 1 {
		t.Errorf("coin collected %d times", total)
	}
	if w.Score() != 100 || w.CoinCount() != 0 {
		t.Errorf("score %d, coins left %d", w.Score(), w.CoinCount())
	}
}

func TestFallOutLoses(t *testing.T) {
	def := flatLevel()
	def.Platforms = nil
	w := newTestWorld(def, config.DefaultPlatformerConfig())

	for i := 0; i < 200 && w.State() == Playing; i++ {
		w.Step(frame())
	}
	if w.State() != Lost {
		t.Fatalf("falling forever should lose, state %v", w.State())
	}
	if p := w.Player(); p.Y <= 700 {
		t.Errorf("lost above the fall limit at y=%v", p.Y)
	}
}

func TestLossBeatsWinInSameTick(t *testing.T) {
	def := flatLevel()
	def.Goal = levels.Point{X: 0, Y: 10000}
	def.Enemies = []levels.EnemySpawn{{X: 110, Y: 510, Kind: levels.EnemySlow}}
	w := newTestWorld(def, noFlipConfig())

	ev := w.Step(frame())
	if w.State() != Lost || ev.Won {
		t.Errorf("state %v, won %v: a lethal hit in the same tick must win over the goal", w.State(), ev.Won)
	}
}

func TestTerminalStatesFreeze(t *testing.T) {
	def := flatLevel()
	def.Goal = levels.Point{X: 0, Y: 10000}
	def.Enemies = []levels.EnemySpawn{{X: 5000, Y: 510, Kind: levels.EnemyFast}}
	w := newTestWorld(def, config.DefaultPlatformerConfig())

	if ev := w.Step(frame()); !ev.Won {
		t.Fatal("expected immediate win")
	}
	before := w.Snapshot(1)
	for i := 0; i < 50; i++ {
		if ev := w.Step(frame(core.ActionRight, core.ActionJump)); ev != (Events{}) {
			t.Fatalf("frozen world reported events %+v", ev)
		}
	}
	after := w.Snapshot(1)
	if before.Hash() != after.Hash() || w.State() != Won {
		t.Error("Won world must not change")
	}
}

func TestGoalReached(t *testing.T) {
	goal := levels.Point{X: 2300, Y: 400}
	tests := []struct {
		x, y float64
		want bool
	}{
		{2301, 399, true},
		{2300, 399, false},
		{2301, 400, false},
		{100, 100, false},
		{5000, -50, true},
	}
	for _, tc := range tests {
		if got := GoalReached(tc.x, tc.y, goal); got != tc.want {
			t.Errorf("GoalReached(%v, %v) = %v", tc.x, tc.y, got)
		}
	}
}

func TestRestartReloadsLevel(t *testing.T) {
	def, _ := levels.Get(1)
	w := newTestWorld(def, config.DefaultPlatformerConfig())

	for i := 0; i < 120; i++ {
		w.Step(frame(core.ActionRight))
	}
	w.Restart()

	if w.State() != Playing || w.Score() != 0 || w.Tick() != 0 {
		t.Errorf("restart: state %v score %d tick %d", w.State(), w.Score(), w.Tick())
	}
	if w.CoinCount() != 10 || w.EnemyCount() != 5 {
		t.Errorf("restart should respawn everything, got %d coins %d enemies", w.CoinCount(), w.EnemyCount())
	}
	if p := w.Player(); p.X != 100 || p.Y != 400 {
		t.Errorf("restart should respawn the player, got %+v", p.Body)
	}
}

func TestCameraTracksPlayerEveryTick(t *testing.T) {
	def := flatLevel()
	w := newTestWorld(def, config.DefaultPlatformerConfig())
	cam := config.DefaultPlatformerConfig().Camera

	for i := 0; i < 300; i++ {
		w.Step(frame(core.ActionRight))
		if got, want := w.Camera(), Follow(w.Player().Body, cam); got != want {
			t.Fatalf("tick %d: camera %+v, expected %+v", i, got, want)
		}
	}
	if w.Camera().X <= 0 {
		t.Error("camera should have scrolled right")
	}
}

func TestDifficultyScalesEnemies(t *testing.T) {
	def, _ := levels.Get(3)
	cfg := noFlipConfig()
	cfg.Difficulty = config.DifficultyConfig{
		Enabled:     true,
		Progression: config.ProgressionConfig{Type: "level", MaxAt: 2},
		Scaling:     config.ScalingConfig{SpeedMultiplier: 1},
	}
	dm := config.NewDifficultyManager(cfg.Difficulty)
	w := NewWorld(def, cfg, rand.New(rand.NewSource(1)), Tuning{Difficulty: dm})

	for _, e := range w.enemies {
		want := speedFor(e.Variant, cfg.Enemies) * 2
		if !near(e.Speed, want) {
			t.Errorf("%v enemy speed = %v, expected %v", e.Variant, e.Speed, want)
		}
	}
}

func TestWorldDeterminism(t *testing.T) {
	def, _ := levels.Get(1)
	cfg := config.DefaultPlatformerConfig()

	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%90 < 60 {
			inputs[i].Set(core.ActionRight)
		}
		if i%45 == 0 {
			inputs[i].Set(core.ActionJump)
		}
	}

	run := func() Snapshot {
		w := NewWorld(def, cfg, rand.New(rand.NewSource(12345)), Tuning{})
		for _, in := range inputs {
			w.Step(in)
		}
		return w.Snapshot(levels.Count())
	}

	s1, s2 := run(), run()
	if s1.Hash() != s2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", s1.Hash(), s2.Hash())
	}
	if s1.Score != s2.Score || s1.State != s2.State {
		t.Error("Determinism failed: score or state differ")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	def, _ := levels.Get(1)
	w := newTestWorld(def, config.DefaultPlatformerConfig())

	snap := w.Snapshot(levels.Count())
	snap.Platforms[0].X = 12345
	snap.Coins = snap.Coins[:0]

	again := w.Snapshot(levels.Count())
	if again.Platforms[0].X == 12345 || len(again.Coins) != 10 {
		t.Error("mutating a snapshot must not affect the world")
	}
	if again.LevelCount != 3 || again.LevelName != "Jungle Adventure" {
		t.Errorf("snapshot level info = %d %q", again.LevelCount, again.LevelName)
	}
}
