package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/sim"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}

// runLevel is a floor with one coin and a goal a short run to the right.
func runLevel(id int) levels.Definition {
	return levels.Definition{
		ID:          id,
		Name:        "Run",
		Background:  "jungle",
		PlayerStart: levels.Point{X: 100, Y: 500},
		Goal:        levels.Point{X: 300, Y: 600},
		Platforms:   []core.Rect{core.NewRect(0, 550, 2000, 50)},
		Coins:       []levels.Point{{X: 200, Y: 510}},
	}
}

// pit has nothing to stand on.
func pit(id int) levels.Definition {
	return levels.Definition{
		ID:          id,
		Name:        "Pit",
		Background:  "swamp",
		PlayerStart: levels.Point{X: 100, Y: 100},
		Goal:        levels.Point{X: 100000, Y: 0},
	}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, store *storage.Store, defs ...levels.Definition) (Model, *platformer.Game) {
	t.Helper()
	cfg := config.DefaultPlatformerConfig()
	opts := platformer.Options{Config: &cfg, Levels: defs}
	if store != nil {
		opts.Store = store
	}
	game := platformer.NewWithOptions(opts)
	m := NewModel(game, store, testRuntime)
	m.Init()
	return m, game
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm
}

func ticks(t *testing.T, m Model, n int) Model {
	t.Helper()
	for range n {
		m = send(t, m, TickMsg{})
	}
	return m
}

func TestModelKeyHoldAndRelease(t *testing.T) {
	m, _ := newTestModel(t, nil, runLevel(1))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if !m.keyboard.Right() {
		t.Fatal("right should be held after a press")
	}

	// 700ms at 60 ticks per second
	m = ticks(t, m, 41)
	if !m.keyboard.Right() {
		t.Fatal("right released before the initial hold ran out")
	}
	m = ticks(t, m, 1)
	if m.keyboard.Right() {
		t.Fatal("right should be released after the initial hold")
	}
}

func TestModelKeyRepeatExtendsHold(t *testing.T) {
	m, _ := newTestModel(t, nil, runLevel(1))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = ticks(t, m, 40)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}) // auto-repeat, 120ms = 7 ticks

	m = ticks(t, m, 6)
	if !m.keyboard.Right() {
		t.Fatal("repeat should keep the key held")
	}
	m = ticks(t, m, 1)
	if m.keyboard.Right() {
		t.Fatal("key should be released once repeats stop")
	}
}

func TestModelKeyRepeatNeverShortensHold(t *testing.T) {
	m, _ := newTestModel(t, nil, runLevel(1))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = ticks(t, m, 1)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}) // early repeat

	m = ticks(t, m, 40)
	if !m.keyboard.Right() {
		t.Fatal("an early repeat cut the initial hold short")
	}
	m = ticks(t, m, 1)
	if m.keyboard.Right() {
		t.Fatal("right should be released after the initial hold")
	}
}

func TestModelSavesScoreOncePerFinishedLevel(t *testing.T) {
	store := openStore(t)
	m, game := newTestModel(t, store, runLevel(1))
	m = m.WithPlayer("alice")

	m.keyboard.KeyDown(core.KeyRight)
	for i := 0; i < 300 && !game.State().Won; i++ {
		m = ticks(t, m, 1)
	}
	if !game.State().Won {
		t.Fatal("level was never won")
	}
	m = ticks(t, m, 200)

	scores, err := store.TopScores(platformer.ID, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, expected exactly 1", len(scores))
	}
	got := scores[0]
	if got.Player != "alice" || got.Level != 1 || got.Score != 100 {
		t.Errorf("saved %+v", got)
	}
}

func TestModelSkipsZeroScore(t *testing.T) {
	store := openStore(t)
	m, game := newTestModel(t, store, pit(1))

	for i := 0; i < 300 && !game.State().GameOver; i++ {
		m = ticks(t, m, 1)
	}
	if !game.State().GameOver {
		t.Fatal("falling into the pit should lose")
	}

	scores, _ := store.TopScores(platformer.ID, 10)
	if len(scores) != 0 {
		t.Errorf("a zero-score run was saved: %+v", scores)
	}
}

func TestModelDigitSelectsLevelInOverview(t *testing.T) {
	store := openStore(t)
	record := `{"currentLevel":1,"unlockedLevels":[1,2],"completedLevels":[1],"score":100}`
	if err := store.SaveItem(sim.DefaultProgressKey, []byte(record)); err != nil {
		t.Fatalf("SaveItem() failed: %v", err)
	}
	m, game := newTestModel(t, store, runLevel(1), runLevel(2), runLevel(3))

	// Digits do nothing while playing
	m = send(t, m, runeKey('2'))
	if game.State().Level != 1 {
		t.Fatal("digit switched levels outside the overview")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	m = ticks(t, m, 1)
	if !game.OverviewOpen() {
		t.Fatal("esc should open the overview")
	}

	m = send(t, m, runeKey('3'))
	if game.State().Level != 1 || !game.OverviewOpen() {
		t.Fatal("a locked level should be ignored")
	}

	send(t, m, runeKey('2'))
	if game.State().Level != 2 {
		t.Errorf("level = %d, expected 2", game.State().Level)
	}
	if game.OverviewOpen() {
		t.Error("selecting a level should close the overview")
	}
}

func TestModelStartLevel(t *testing.T) {
	store := openStore(t)
	record := `{"currentLevel":1,"unlockedLevels":[1,2],"completedLevels":[1],"score":100}`
	store.SaveItem(sim.DefaultProgressKey, []byte(record))

	cfg := config.DefaultPlatformerConfig()
	game := platformer.NewWithOptions(platformer.Options{
		Store:  store,
		Config: &cfg,
		Levels: []levels.Definition{runLevel(1), runLevel(2)},
	})
	NewModel(game, store, testRuntime).WithStartLevel(2).Init()

	if game.State().Level != 2 {
		t.Errorf("level = %d, expected 2", game.State().Level)
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	m, game := newTestModel(t, nil, runLevel(1))

	m.keyboard.KeyDown(core.KeyRight)
	m = ticks(t, m, 10)
	before := game.Snapshot().Player

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.Snapshot().Player != before {
		t.Error("resize should not reset the game")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelQuitAndView(t *testing.T) {
	m, _ := newTestModel(t, nil, runLevel(1))
	m = ticks(t, m, 1)

	if view := m.View(); !strings.Contains(view, "Score") {
		t.Errorf("view should show the HUD, got %q", view)
	}

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}
