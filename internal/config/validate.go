package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the configuration describes a playable arena.
// A player that can cover a segment index outside the row is rejected here,
// so the collision code never has to bounds-check at runtime.
func (c SpikesConfig) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	a := c.Arena
	switch {
	case a.Size <= 0:
		fail("arena.size must be positive, got %v", a.Size)
	case a.PlayerSize < 1:
		fail("arena.player_size must be at least 1, got %v", a.PlayerSize)
	case a.PlayerSize >= a.Size:
		fail("arena.player_size (%v) must be smaller than arena.size (%v)", a.PlayerSize, a.Size)
	}
	if a.SpikeHeight < 0 {
		fail("arena.spike_height must not be negative, got %v", a.SpikeHeight)
	}
	if a.Segments < 1 {
		fail("arena.segments must be at least 1, got %d", a.Segments)
	} else if a.Size > 0 {
		// Rightmost index the player can ever touch.
		last := int(math.Floor((a.Size - 1) / c.SegmentWidth()))
		if last >= a.Segments {
			fail("arena.segments: player can reach index %d of %d", last, a.Segments)
		}
	}

	m := c.Motion
	if m.VerticalSpeed <= 0 {
		fail("motion.vertical_speed must be positive, got %v", m.VerticalSpeed)
	}
	if m.CenterSpeed < 0 || m.HorizontalSpeed < 0 {
		fail("motion speeds must not be negative")
	}
	if m.EdgeBonus < 0 {
		fail("motion.edge_bonus must not be negative, got %d", m.EdgeBonus)
	}

	h := c.Hazards
	if h.DangerChance < 0 || h.DangerChance > 1 {
		fail("hazards.danger_chance must be within [0, 1], got %v", h.DangerChance)
	}
	for i, tier := range h.BonusTiers {
		if tier.Value <= 0 || tier.Every <= 0 {
			fail("hazards.bonus_tiers[%d]: value and every must be positive, got %d/%d", i, tier.Value, tier.Every)
		}
	}

	if c.Timing.TickMS <= 0 || c.Timing.RefreshMS <= 0 {
		fail("timing: tick_ms and refresh_ms must be positive, got %d/%d", c.Timing.TickMS, c.Timing.RefreshMS)
	}
	if c.Scores.TopN < 1 {
		fail("scores.top_n must be at least 1, got %d", c.Scores.TopN)
	}

	return errors.Join(errs...)
}
