package sim

import (
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

// Variant selects an enemy's patrol speed.
type Variant = levels.EnemyKind

const (
	VariantFast = levels.EnemyFast
	VariantSlow = levels.EnemySlow
)

// Enemy is a patrolling body. Direction is always -1 or +1.
type Enemy struct {
	Body
	Variant    Variant
	Direction  float64
	Speed      float64
	FlipChance float64
}

// NewEnemy creates an enemy heading right with the given patrol tuning.
func NewEnemy(x, y float64, v Variant, speed, flipChance float64, cfg config.PlatformerEnemies) *Enemy {
	return &Enemy{
		Body:       Body{X: x, Y: y, W: cfg.Width, H: cfg.Height},
		Variant:    v,
		Direction:  1,
		Speed:      speed,
		FlipChance: flipChance,
	}
}

// Update walks the enemy one tick and then turns it around if it is not
// standing on anything, or at random with probability FlipChance. rng is
// only consulted when the enemy is grounded.
func (e *Enemy) Update(rng *rand.Rand, gravity float64, platforms []core.Rect) {
	e.VX = e.Speed * e.Direction
	e.integrate(gravity, platforms)

	if !e.OnGround || rng.Float64() < e.FlipChance {
		e.Direction = -e.Direction
	}
}

// FacingRight reports the sprite direction.
func (e *Enemy) FacingRight() bool {
	return e.Direction > 0
}

// speedFor returns the base patrol speed of a variant.
func speedFor(v Variant, cfg config.PlatformerEnemies) float64 {
	if v == VariantSlow {
		return cfg.SlowSpeed
	}
	return cfg.FastSpeed
}
