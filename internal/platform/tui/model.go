package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Terminals report key presses but never releases. A press holds its key
// for a while; auto-repeat events extend the hold until they stop.
const (
	initialHold = 700 * time.Millisecond // longer than common auto-repeat delays
	repeatHold  = 120 * time.Millisecond
)

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyboard   *core.Keyboard
	keyMapper  *KeyMapper
	heldUntil  map[string]int // key -> tick at which it is released
	tick       int
	player     string
	startLevel int
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether the score has been saved for the finished level
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		keyboard:  core.NewKeyboard(),
		keyMapper: NewKeyMapper(),
		heldUntil: make(map[string]int),
	}
}

// WithPlayer returns a copy of the model that records scores under name.
func (m Model) WithPlayer(name string) Model {
	m.player = name
	return m
}

// WithStartLevel returns a copy of the model that switches to level id
// once the game is reset. Locked levels are ignored by the game.
func (m Model) WithStartLevel(id int) Model {
	m.startLevel = id
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if nav, ok := m.game.(registry.LevelNavigator); ok && m.startLevel > 0 {
		nav.SelectLevel(m.startLevel)
	}
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	// Digits pick a level while the level overview is open
	if nav, ok := m.game.(registry.LevelNavigator); ok && nav.OverviewOpen() {
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 {
			nav.SelectLevel(n)
			return m, nil
		}
	}

	key, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if key == "" {
		return m, nil
	}

	hold := initialHold
	if m.keyboard.IsPressed(key) {
		hold = repeatHold
	}
	m.keyboard.KeyDown(key)
	m.heldUntil[key] = max(m.heldUntil[key], m.tick+m.ticksFor(hold))

	return m, nil
}

// handleMouse forwards pointer events in screen cells.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.keyboard.PointerClick(msg.X, msg.Y)
	case msg.Action == tea.MouseActionMotion:
		m.keyboard.PointerMove(msg.X, msg.Y)
	}
	return m, nil
}

// handleResize processes window resize events.
// The game keeps its state; only the screen buffer follows the terminal.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.tick++
	m.releaseKeys()

	result := m.game.Step(m.keyboard.Frame())
	m.gameState = result.State

	// Save the score once per finished level
	finished := m.gameState.GameOver || m.gameState.Won
	switch {
	case finished && !m.scoreSaved:
		if m.store != nil && m.gameState.Score > 0 {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(m.game.ID(), m.player, m.gameState.Level, m.gameState.Score)
		}
		m.scoreSaved = true
	case !finished:
		m.scoreSaved = false
	}

	return m, tickCmd(m.config.TickRate)
}

// releaseKeys lifts keys whose hold has run out.
func (m *Model) releaseKeys() {
	for key, until := range m.heldUntil {
		if m.tick >= until {
			m.keyboard.KeyUp(key)
			delete(m.heldUntil, key)
		}
	}
}

// ticksFor converts a duration to simulation ticks, at least one.
func (m Model) ticksFor(d time.Duration) int {
	return max(1, int(d*time.Duration(m.config.TickRate)/time.Second))
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, config.AppDir, "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	return RunModel(NewModel(game, store, cfg))
}

// RunModel starts the Bubble Tea program with the given model.
func RunModel(model Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Clicks drive the level strip and overview
	)

	_, err := p.Run()
	return err
}
