package tui

import (
	"strings"
	"testing"
)

func TestProgressKey(t *testing.T) {
	tests := []struct {
		user string
		want string
	}{
		{"alice", "rex-progress-alice"},
		{"bob smith!", "rex-progress-bob_smith_"},
		{"x-1_y", "rex-progress-x-1_y"},
		{"", "rex-progress"},
		{strings.Repeat("a", 40), "rex-progress-" + strings.Repeat("a", 32)},
	}

	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			if got := ProgressKey(tt.user); got != tt.want {
				t.Errorf("ProgressKey(%q) = %q, expected %q", tt.user, got, tt.want)
			}
		})
	}
}
