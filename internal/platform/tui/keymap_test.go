package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		wantKey  string
		wantQuit bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.KeyLeft, false},
		{"a", runeKey('a'), core.KeyLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.KeyRight, false},
		{"d", runeKey('d'), core.KeyRight, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.KeyUp, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.KeySpace, false},
		{"r", runeKey('r'), core.KeyR, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, core.KeyEscape, false},
		{"q", runeKey('q'), "", true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, "", true},
		{"unbound", runeKey('x'), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, quit := km.MapKey(tt.msg)
			if key != tt.wantKey || quit != tt.wantQuit {
				t.Errorf("MapKey() = (%q, %v), expected (%q, %v)", key, quit, tt.wantKey, tt.wantQuit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want MenuAction
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{"k", runeKey('k'), MenuActionUp},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{"j", runeKey('j'), MenuActionDown},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, MenuActionBack},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{"q", runeKey('q'), MenuActionQuit},
		{"unbound", runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
				t.Errorf("MapKeyToMenuAction() = %v, expected %v", got, tt.want)
			}
		})
	}
}
