package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// KeyMapper translates Bubble Tea key messages to keyboard keys and menu actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to the keyboard key it holds.
// Returns the key (empty if unbound) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (key string, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return "", true
	case "left", "a", "h":
		return core.KeyLeft, false
	case "right", "d", "l":
		return core.KeyRight, false
	case "up", "w", "k":
		return core.KeyUp, false
	case " ", "space":
		return core.KeySpace, false
	case "r", "R":
		return core.KeyR, false
	case "esc":
		return core.KeyEscape, false
	}
	return "", false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
