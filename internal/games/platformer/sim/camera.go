package sim

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Camera is the world-space offset of the viewport's top-left corner.
type Camera struct {
	X, Y float64
}

// Follow centers the viewport on the body's top-left corner, then clamps
// X to at least MinX and Y into [MinY, MaxY]. There is no easing.
func Follow(b Body, cfg config.PlatformerCamera) Camera {
	x := b.X - cfg.ViewportW/2
	if x < cfg.MinX {
		x = cfg.MinX
	}
	y := core.ClampF(b.Y-cfg.ViewportH/2, cfg.MinY, cfg.MaxY)
	return Camera{X: x, Y: y}
}

// ToScreen converts a world position to viewport-relative coordinates.
func (c Camera) ToScreen(x, y float64) (float64, float64) {
	return x - c.X, y - c.Y
}
