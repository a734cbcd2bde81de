package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// Main menu entries.
const (
	menuPlay = iota
	menuSelectLevel
	menuScores
	menuQuit
)

var menuEntries = []string{
	"Play",
	"Select Level...",
	"High Scores",
	"Quit",
}

// LevelPickerKeyMap defines the key bindings for the level picker.
type LevelPickerKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Play key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LevelPickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LevelPickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Play},
		{k.Back, k.Quit},
	}
}

// DefaultLevelPickerKeyMap returns default key bindings.
func DefaultLevelPickerKeyMap() LevelPickerKeyMap {
	return LevelPickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "prev level"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "next level"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuModel is the Bubble Tea model for the title menu and level picker.
type MenuModel struct {
	levels         []registry.LevelInfo
	cursor         int
	levelCursor    int
	inLevelSelect  bool
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	pickerKeys     LevelPickerKeyMap
	help           help.Model
	quitting       bool
	level          int  // Level picked by the user; 0 keeps the saved one
	play           bool // Set when the user starts the game
	openScoreboard bool // True if user picked high scores or pressed Tab
}

// NewMenuModel creates a new menu model over the campaign levels.
func NewMenuModel(levels []registry.LevelInfo, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		levels:     levels,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		pickerKeys: DefaultLevelPickerKeyMap(),
		help:       help.New(),
	}
	for i, l := range levels {
		if l.Current {
			m.levelCursor = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inLevelSelect {
		return m.handleLevelSelectKey(msg)
	}

	action := m.keyMapper.MapKeyToMenuAction(msg)
	if action == MenuActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	return m.handleMainKey(action)
}

func (m MenuModel) handleMainKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		switch m.cursor {
		case menuPlay:
			m.play = true
			return m, tea.Quit
		case menuSelectLevel:
			if len(m.levels) > 0 {
				m.inLevelSelect = true
			}
		case menuScores:
			m.openScoreboard = true
			return m, tea.Quit
		case menuQuit:
			m.quitting = true
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

func (m MenuModel) handleLevelSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.pickerKeys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.pickerKeys.Up):
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case key.Matches(msg, m.pickerKeys.Down):
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case key.Matches(msg, m.pickerKeys.Play):
		l := m.levels[m.levelCursor]
		if !l.Unlocked {
			return m, nil
		}
		m.level = l.ID
		m.play = true
		return m, tea.Quit
	case key.Matches(msg, m.pickerKeys.Back):
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewMain()
}

func (m MenuModel) viewMain() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  R E X  ", m.width))
	b.WriteString("\n\n")

	subtitle := "A jungle platformer"
	for _, l := range m.levels {
		if l.Current {
			subtitle = fmt.Sprintf("Next up: Level %d, %s", l.ID, l.Name)
		}
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, entry := range menuEntries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+entry, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i, l := range m.levels {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%2d. %-20s %s", cursor, l.ID, l.Name, levelStatus(l))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.pickerKeys), m.width))

	return b.String()
}

// levelStatus labels a level for pickers.
func levelStatus(l registry.LevelInfo) string {
	switch {
	case !l.Unlocked:
		return "LOCKED"
	case l.Completed:
		return "DONE"
	}
	return ""
}

// Level returns the level picked in the level select, or 0.
func (m MenuModel) Level() int {
	return m.level
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// WantsPlay returns true if user started the game.
func (m MenuModel) WantsPlay() bool {
	return m.play
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Level           int // 0 keeps the saved level
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(levels []registry.LevelInfo, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(levels, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return m.Result(), nil
}

// Result summarizes what the user chose.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{
		Config: m.Config(),
		Level:  m.Level(),
	}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || !m.WantsPlay():
		result.Quit = true
	}
	return result
}
