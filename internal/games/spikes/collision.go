package spikes

import "math"

// coveredSegments returns the inclusive range of segment indices spanned by
// the player's width. Config validation guarantees both ends are in range.
func (g *Game) coveredSegments() (int, int) {
	w := g.cfg.SegmentWidth()
	x := g.player.Pos.X
	left := int(math.Floor(x / w))
	right := int(math.Floor((x + g.cfg.Arena.PlayerSize - 1) / w))
	return left, right
}

// resolveCollisions checks the rows the player currently overlaps.
// Returns the bonus points collected this tick.
func (g *Game) resolveCollisions() int {
	y := g.player.Pos.Y
	left, right := g.coveredSegments()

	collected := 0
	if y <= g.cfg.Arena.SpikeHeight {
		collected += g.checkRow(RowTop, left, right)
	}
	if y >= g.cfg.MaxPos()-g.cfg.Arena.SpikeHeight {
		collected += g.checkRow(RowBottom, left, right)
	}
	return collected
}

// checkRow scans the covered indices of one row from left to right.
// A dangerous segment ends the session and stops the scan of this row.
func (g *Game) checkRow(row RowID, left, right int) int {
	collected := 0
	for i := left; i <= right; i++ {
		seg := g.hazards.Segment(row, i)
		if seg.Dangerous {
			g.end()
			return collected
		}
		if seg.Bonus > 0 {
			g.bonus += seg.Bonus
			collected += seg.Bonus
			g.hazards.clearBonus(i)
		}
	}
	return collected
}
