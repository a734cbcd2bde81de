package core

import "sync"

// Key identities as reported by the terminal layer.
const (
	KeyLeft   = "left"
	KeyRight  = "right"
	KeyUp     = "up"
	KeySpace  = " "
	KeyR      = "r"
	KeyEscape = "esc"
)

// Keyboard tracks which keys are currently held plus the pointer state.
// Producers feed it with KeyDown/KeyUp and pointer events; the simulation
// reads an immutable InputFrame once per tick through Frame.
// Later events for the same key overwrite earlier ones.
type Keyboard struct {
	mu      sync.Mutex
	keys    map[string]bool
	pointer Pointer
	clicked bool
}

// NewKeyboard creates a keyboard with nothing pressed.
func NewKeyboard() *Keyboard {
	return &Keyboard{keys: make(map[string]bool)}
}

// KeyDown records a key as held.
func (k *Keyboard) KeyDown(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys[normalizeKey(key)] = true
}

// KeyUp records a key as released.
func (k *Keyboard) KeyUp(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys[normalizeKey(key)] = false
}

// IsPressed reports whether the key is held. Unknown keys are not pressed.
func (k *Keyboard) IsPressed(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.keys[normalizeKey(key)]
}

// Left reports whether the left intent is held.
func (k *Keyboard) Left() bool { return k.IsPressed(KeyLeft) }

// Right reports whether the right intent is held.
func (k *Keyboard) Right() bool { return k.IsPressed(KeyRight) }

// Jump reports whether space or up is held.
func (k *Keyboard) Jump() bool { return k.IsPressed(KeySpace) || k.IsPressed(KeyUp) }

// Restart reports whether the restart key is held.
func (k *Keyboard) Restart() bool { return k.IsPressed(KeyR) }

// Escape reports whether escape is held.
func (k *Keyboard) Escape() bool { return k.IsPressed(KeyEscape) }

// PointerMove updates the last pointer position.
func (k *Keyboard) PointerMove(x, y int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pointer = Pointer{X: x, Y: y}
}

// PointerClick records a click at (x, y). The click edge stays set until
// it is consumed by ConsumeClick or Frame.
func (k *Keyboard) PointerClick(x, y int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pointer = Pointer{X: x, Y: y}
	k.clicked = true
}

// Pointer returns the last pointer position.
func (k *Keyboard) Pointer() Pointer {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pointer
}

// ConsumeClick returns the click edge and clears it.
func (k *Keyboard) ConsumeClick() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	c := k.clicked
	k.clicked = false
	return c
}

// Frame freezes the current keyboard and pointer state into an InputFrame.
// The click edge is consumed.
func (k *Keyboard) Frame() InputFrame {
	k.mu.Lock()
	defer k.mu.Unlock()

	f := NewInputFrame()
	if k.keys[KeyLeft] {
		f.Set(ActionLeft)
	}
	if k.keys[KeyRight] {
		f.Set(ActionRight)
	}
	if k.keys[KeySpace] || k.keys[KeyUp] {
		f.Set(ActionJump)
	}
	if k.keys[KeyR] {
		f.Set(ActionRestart)
	}
	if k.keys[KeyEscape] {
		f.Set(ActionEscape)
	}
	f.Pointer = k.pointer
	f.Clicked = k.clicked
	k.clicked = false
	return f
}

// Reset releases every key and drops any pending click.
func (k *Keyboard) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	clear(k.keys)
	k.clicked = false
}

func normalizeKey(key string) string {
	switch key {
	case "space":
		return KeySpace
	case "escape":
		return KeyEscape
	case "R":
		return KeyR
	}
	return key
}
