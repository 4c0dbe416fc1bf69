package spikes

import (
	"github.com/zromick/SpikeGame/internal/config"
	"github.com/zromick/SpikeGame/internal/core"
)

// Player is the controllable square. Pos is its top-left corner.
type Player struct {
	Pos core.Vec
	Vel core.Vec // Vel.X is recomputed from held keys every tick
	// Locked is set once a vertical key is accepted and cleared at either
	// extreme, so a traversal cannot be reversed halfway.
	Locked bool
}

// controller holds the per-tick motion constants derived from the config.
type controller struct {
	hStep       float64 // horizontal displacement per tick
	vStep       float64 // vertical displacement per tick outside the center band
	centerBoost float64 // extra displacement per tick inside the center band
	centerLo    float64
	centerHi    float64
	maxPos      float64
}

// tickScale converts a per-second speed to a per-tick displacement.
// Multiplying before dividing keeps round speeds exact (100 u/s at 100 ms is 10, not 10.000000000000002).
func tickScale(speed float64, tickMS int) float64 {
	return speed * float64(tickMS) / 1000
}

func newController(cfg config.SpikesConfig) controller {
	band := cfg.Arena.Size / 3
	return controller{
		hStep:       tickScale(cfg.Motion.HorizontalSpeed, cfg.Timing.TickMS),
		vStep:       tickScale(cfg.Motion.VerticalSpeed, cfg.Timing.TickMS),
		centerBoost: tickScale(cfg.Motion.CenterSpeed-cfg.Motion.VerticalSpeed, cfg.Timing.TickMS),
		centerLo:    band,
		centerHi:    cfg.Arena.Size - band,
		maxPos:      cfg.MaxPos(),
	}
}

// jump returns the vertical velocity for an accepted up/down key.
func (c controller) jump(k core.Key) float64 {
	if k == core.KeyUp {
		return -c.vStep
	}
	return c.vStep
}

// advance moves the player by one tick. reachedEdge is true when the player
// arrived at the top or bottom extreme from somewhere else this tick.
func (c controller) advance(p Player, in InputState) (next Player, reachedEdge bool) {
	next = p

	dx := 0.0
	if in.Held(core.KeyLeft) {
		dx -= c.hStep
	}
	if in.Held(core.KeyRight) {
		dx += c.hStep
	}
	next.Vel.X = dx
	next.Pos.X = core.ClampF(p.Pos.X+dx, 0, c.maxPos)

	y := p.Pos.Y + p.Vel.Y
	if y > c.centerLo && y < c.centerHi {
		y += core.Sign(p.Vel.Y) * c.centerBoost
	}
	y = core.ClampF(y, 0, c.maxPos)
	next.Pos.Y = y

	if y == 0 || y == c.maxPos {
		next.Locked = false
		reachedEdge = p.Pos.Y != y
	}
	return next, reachedEdge
}
