// Package sim implements the platformer simulation: kinematic bodies,
// enemy patrol, the per-tick world step, camera tracking and the level
// progression state machine. It has no knowledge of terminals or storage
// backends; renderers read Snapshot values and never mutate the world.
package sim

import "github.com/vovakirdan/tui-platformer/internal/core"

// Body is an axis-aligned kinematic body in world pixels.
// OnGround is recomputed by every resolve pass.
type Body struct {
	X, Y     float64
	VX, VY   float64
	W, H     float64
	OnGround bool
}

// Rect returns the body's current bounding box.
func (b *Body) Rect() core.Rect {
	return core.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// integrate applies gravity, advances the position and resolves platform
// contacts. Horizontal velocity and any jump impulse must already be set.
func (b *Body) integrate(gravity float64, platforms []core.Rect) {
	b.VY += gravity
	b.X += b.VX
	b.Y += b.VY
	b.resolve(platforms)
}

// resolve corrects at most one axis per overlapping platform, visiting
// platforms in order and testing each against the already corrected
// position. There is no second pass: a body wedged between two platforms
// may stay embedded in one of them, and fast bodies can tunnel.
func (b *Body) resolve(platforms []core.Rect) {
	b.OnGround = false
	for _, p := range platforms {
		if !b.Rect().Overlaps(p) {
			continue
		}
		switch {
		case b.VY > 0 && b.Y < p.Y:
			// Landing on top.
			b.Y = p.Y - b.H
			b.VY = 0
			b.OnGround = true
		case b.VY < 0 && b.Y > p.Y:
			// Head hit the underside.
			b.Y = p.Bottom()
			b.VY = 0
		case b.VX > 0 && b.X < p.X:
			// Walked into the left face.
			b.X = p.X - b.W
			b.VX = 0
		case b.VX < 0 && b.X > p.X:
			// Walked into the right face.
			b.X = p.Right()
			b.VX = 0
		}
	}
}
