package platformer

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/sim"
)

// Shape tells the rasterizer how to draw a command.
type Shape int

const (
	ShapePlatform Shape = iota
	ShapeGoal
	ShapeCoin
	ShapeEnemy
	ShapePlayer
)

// String returns a human-readable name for the shape.
func (s Shape) String() string {
	switch s {
	case ShapePlatform:
		return "platform"
	case ShapeGoal:
		return "goal"
	case ShapeCoin:
		return "coin"
	case ShapeEnemy:
		return "enemy"
	case ShapePlayer:
		return "player"
	default:
		return "unknown"
	}
}

// DrawCommand is one thing to draw, in viewport coordinates (world pixels
// relative to the camera).
type DrawCommand struct {
	Shape       Shape
	Rect        core.Rect
	Color       core.Color
	Label       string // cosmetic name, e.g. the enemy species
	FacingRight bool
}

// Viewport is the visible world area in world pixels.
type Viewport struct {
	W, H float64
}

// Background palettes keyed by level background name.
var platformColors = map[string]core.Color{
	"jungle":   core.ColorBrown,
	"swamp":    core.ColorDarkGreen,
	"mountain": core.ColorGray,
}

// Cosmetic enemy names. The simulation only knows the speed variant.
var enemyNames = map[sim.Variant]string{
	sim.VariantFast: "jaguar",
	sim.VariantSlow: "alligator",
}

var enemyColors = map[sim.Variant]core.Color{
	sim.VariantFast: core.ColorOrange,
	sim.VariantSlow: core.ColorGreen,
}

// DrawCommands turns a snapshot into an ordered draw list, back to front.
// Anything fully outside the viewport is culled. It is a pure function of
// its arguments.
func DrawCommands(snap sim.Snapshot, vp Viewport) []DrawCommand {
	view := core.NewRect(0, 0, vp.W, vp.H)
	cmds := make([]DrawCommand, 0, len(snap.Platforms)+len(snap.Coins)+len(snap.Enemies)+2)

	add := func(c DrawCommand) {
		if c.Rect.Overlaps(view) {
			cmds = append(cmds, c)
		}
	}
	toView := func(r core.Rect) core.Rect {
		x, y := snap.Camera.ToScreen(r.X, r.Y)
		return core.Rect{X: x, Y: y, W: r.W, H: r.H}
	}

	pc, ok := platformColors[snap.Background]
	if !ok {
		pc = core.ColorWhite
	}
	for _, p := range snap.Platforms {
		add(DrawCommand{Shape: ShapePlatform, Rect: toView(p), Color: pc})
	}

	add(DrawCommand{Shape: ShapeGoal, Rect: toView(snap.Goal), Color: core.ColorBrightMagenta, Label: "goal"})

	for _, c := range snap.Coins {
		add(DrawCommand{Shape: ShapeCoin, Rect: toView(c), Color: core.ColorGold})
	}

	for _, e := range snap.Enemies {
		add(DrawCommand{
			Shape:       ShapeEnemy,
			Rect:        toView(e.Rect),
			Color:       enemyColors[e.Variant],
			Label:       enemyNames[e.Variant],
			FacingRight: e.FacingRight,
		})
	}

	add(DrawCommand{
		Shape:       ShapePlayer,
		Rect:        toView(snap.Player.Rect),
		Color:       core.ColorBrightCyan,
		Label:       "rex",
		FacingRight: snap.Player.FacingRight,
	})

	return cmds
}
