package sim

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Player is the controllable body.
type Player struct {
	Body
	Speed     float64
	JumpPower float64
}

// NewPlayer places a player at (x, y) using the configured size and tuning.
func NewPlayer(x, y float64, cfg config.PlatformerPlayer) *Player {
	return &Player{
		Body:      Body{X: x, Y: y, W: cfg.Width, H: cfg.Height},
		Speed:     cfg.Speed,
		JumpPower: cfg.JumpPower,
	}
}

// Update advances the player by one tick.
// Left wins when both directions are held. Without a direction VX decays by
// the friction factor. A jump needs OnGround from the previous tick.
func (p *Player) Update(in core.InputFrame, phys config.PlatformerPhysics, platforms []core.Rect) {
	switch {
	case in.Has(core.ActionLeft):
		p.VX = -p.Speed
	case in.Has(core.ActionRight):
		p.VX = p.Speed
	default:
		p.VX *= phys.Friction
	}

	if in.Has(core.ActionJump) && p.OnGround {
		p.VY = -p.JumpPower
		p.OnGround = false
	}

	p.integrate(phys.Gravity, platforms)
}

// FacingRight reports the sprite direction. A resting player faces right.
func (p *Player) FacingRight() bool {
	return p.VX >= 0
}
