package sim

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ActorView is the read-only view of a moving body.
type ActorView struct {
	Rect        core.Rect
	FacingRight bool
	OnGround    bool
}

// EnemyView is the read-only view of an enemy.
type EnemyView struct {
	ActorView
	Variant Variant
}

// Snapshot is everything a renderer may read after a tick. It shares no
// memory with the world.
type Snapshot struct {
	Tick       uint64
	LevelID    int
	LevelCount int
	LevelName  string
	Background string
	Player     ActorView
	Enemies    []EnemyView
	Coins      []core.Rect
	Platforms  []core.Rect
	Goal       core.Rect // marker area right of and above the goal point
	Camera     Camera
	State      RunState
	Score      int
}

// Snapshot captures the current world state. levelCount is the catalog size.
func (w *World) Snapshot(levelCount int) Snapshot {
	snap := Snapshot{
		Tick:       w.tick,
		LevelID:    w.def.ID,
		LevelCount: levelCount,
		LevelName:  w.def.Name,
		Background: w.def.Background,
		Player: ActorView{
			Rect:        w.player.Rect(),
			FacingRight: w.player.FacingRight(),
			OnGround:    w.player.OnGround,
		},
		Enemies:   make([]EnemyView, 0, len(w.enemies)),
		Coins:     make([]core.Rect, 0, len(w.coins)),
		Platforms: append([]core.Rect(nil), w.platforms...),
		Goal:      goalMarker(w.def.Goal.X, w.def.Goal.Y, w.cfg.Player.Height),
		Camera:    w.camera,
		State:     w.state,
		Score:     w.score,
	}
	for _, e := range w.enemies {
		snap.Enemies = append(snap.Enemies, EnemyView{
			ActorView: ActorView{Rect: e.Rect(), FacingRight: e.FacingRight(), OnGround: e.OnGround},
			Variant:   e.Variant,
		})
	}
	for _, c := range w.coins {
		snap.Coins = append(snap.Coins, c.Rect())
	}
	return snap
}

// goalMarker is a flag-sized area standing on the goal line.
func goalMarker(x, y, h float64) core.Rect {
	return core.Rect{X: x, Y: y - h, W: h / 2, H: h}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.LevelID) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.State)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)   //#nosec G115 -- hash computation
	h = hashRect(h, snap.Player.Rect)
	h = h*31 + boolBit(snap.Player.FacingRight)
	for _, e := range snap.Enemies {
		h = hashRect(h, e.Rect)
		h = h*31 + boolBit(e.FacingRight)
		h = h*31 + uint64(e.Variant) //#nosec G115 -- hash computation
	}
	for _, c := range snap.Coins {
		h = hashRect(h, c)
	}
	h = h*31 + math.Float64bits(snap.Camera.X)
	h = h*31 + math.Float64bits(snap.Camera.Y)
	return h
}

func hashRect(h uint64, r core.Rect) uint64 {
	h = h*31 + math.Float64bits(r.X)
	h = h*31 + math.Float64bits(r.Y)
	h = h*31 + math.Float64bits(r.W)
	h = h*31 + math.Float64bits(r.H)
	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
