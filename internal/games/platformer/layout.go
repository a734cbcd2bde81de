package platformer

import "github.com/vovakirdan/tui-platformer/internal/core"

// Screen rows reserved around the playfield.
const (
	hudRows   = 1
	stripRows = 1
)

// Overview button size in cells.
const (
	overviewButtonW   = 11
	overviewButtonH   = 5
	overviewButtonGap = 2
	stripButtonW      = 3
)

// button is a clickable level target in screen cells.
type button struct {
	ID         int
	X, Y, W, H int
}

func (b button) contains(p core.Pointer) bool {
	return p.X >= b.X && p.X < b.X+b.W && p.Y >= b.Y && p.Y < b.Y+b.H
}

// hitButton returns the id of the button under the pointer.
func hitButton(buttons []button, p core.Pointer) (int, bool) {
	for _, b := range buttons {
		if b.contains(p) {
			return b.ID, true
		}
	}
	return 0, false
}

// playfield is the screen area the world is drawn into.
func playfield(w, h int) (x, y, pw, ph int) {
	return 0, hudRows, w, max(h-hudRows-stripRows, 0)
}

// stripButtons lays out the bottom level strip: "[1] [2] [3]" centered.
func stripButtons(w, h, n int) []button {
	if h < hudRows+stripRows+1 || n <= 0 {
		return nil
	}
	total := n*stripButtonW + (n - 1)
	x0 := (w - total) / 2
	y := h - 1
	out := make([]button, n)
	for i := range out {
		out[i] = button{ID: i + 1, X: x0 + i*(stripButtonW+1), Y: y, W: stripButtonW, H: 1}
	}
	return out
}

// overviewButtons lays out the overview level buttons in one centered row.
func overviewButtons(w, h, n int) []button {
	if n <= 0 {
		return nil
	}
	total := n*overviewButtonW + (n-1)*overviewButtonGap
	x0 := (w - total) / 2
	y := h/2 - overviewButtonH/2
	out := make([]button, n)
	for i := range out {
		out[i] = button{
			ID: i + 1,
			X:  x0 + i*(overviewButtonW+overviewButtonGap),
			Y:  y,
			W:  overviewButtonW,
			H:  overviewButtonH,
		}
	}
	return out
}
