package spikes

import (
	"fmt"
	"math"
	"strconv"

	"github.com/zromick/SpikeGame/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar        = '█'
	TopSpikeSafe      = '▽'
	TopSpikeLethal    = '▼'
	BottomSpikeSafe   = '△'
	BottomSpikeLethal = '▲'
	DangerMark        = '!'
)

// minInnerH is the smallest arena height (in rows) worth drawing.
const minInnerH = 6

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	RenderSnapshot(dst, g.Snapshot())
}

// RenderSnapshot draws a snapshot to the screen. Line 0 holds the HUD and
// the arena box fills the rest, keeping roughly square proportions given
// terminal cells are twice as tall as they are wide.
func RenderSnapshot(dst *core.Screen, s Snapshot) {
	dst.Clear()

	segments := len(s.Top)
	innerH := dst.Height() - 3
	innerW := min(dst.Width()-2, innerH*2)
	if segments > 0 {
		innerW -= innerW % segments
	}
	if innerH < minInnerH || segments == 0 || innerW < segments {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	ox := (dst.Width() - innerW - 2) / 2
	oy := 1
	dst.DrawBox(ox, oy, innerW+2, innerH+2)
	ix, iy := ox+1, oy+1

	drawRow(dst, s.Top, ix, iy, innerW, true)
	drawRow(dst, s.Bottom, ix, iy+innerH-1, innerW, false)
	drawPlayer(dst, s, ix, iy, innerW, innerH)

	if s.State == StatePlaying {
		dst.DrawTextCentered(0, fmt.Sprintf("%.1f + %d", s.Elapsed, s.Bonus))
		return
	}
	drawOverlay(dst, s, ix, iy, innerW, innerH)
}

// drawRow renders one hazard row across the arena width.
func drawRow(dst *core.Screen, row []Segment, x, y, width int, top bool) {
	n := len(row)
	for i, seg := range row {
		c0 := x + i*width/n
		c1 := x + (i+1)*width/n

		glyph, color := BottomSpikeSafe, core.ColorGray
		if top {
			glyph = TopSpikeSafe
		}
		switch {
		case seg.Dangerous:
			glyph, color = BottomSpikeLethal, core.ColorRed
			if top {
				glyph = TopSpikeLethal
			}
		case seg.Bonus > 0:
			color = TierColor(seg.Bonus)
		}

		for c := c0; c < c1; c++ {
			dst.SetColored(c, y, glyph, color)
		}

		mid := (c0 + c1) / 2
		switch {
		case seg.Dangerous:
			dst.SetColored(mid, y, DangerMark, core.ColorRed)
		case seg.Bonus > 0:
			label := strconv.Itoa(seg.Bonus)
			if len(label) <= c1-c0 {
				dst.DrawTextColored(c0+(c1-c0-len(label))/2, y, label, color)
			}
		}
	}
}

// drawPlayer scales the player square into the arena box.
func drawPlayer(dst *core.Screen, s Snapshot, x, y, width, height int) {
	if s.ArenaSize <= 0 {
		return
	}
	pw := max(1, int(math.Round(s.PlayerSize/s.ArenaSize*float64(width))))
	ph := max(1, int(math.Round(s.PlayerSize/s.ArenaSize*float64(height))))
	px := core.Scale(s.Position.X, s.ArenaSize, width)
	py := core.Scale(s.Position.Y, s.ArenaSize, height)

	// Keep the square inside the box at the far edges
	px = min(px, width-pw)
	py = min(py, height-ph)

	dst.FillRect(x+px, y+py, pw, ph, PlayerChar, core.ColorWhite)
}

// drawOverlay draws the start/game-over panel in the middle of the arena.
func drawOverlay(dst *core.Screen, s Snapshot, x, y, width, height int) {
	lines := []string{"SPIKE RUNNER", ""}
	if s.LastScore > 0 {
		lines = append(lines, fmt.Sprintf("Last Score: %.1f", s.LastScore))
	}
	lines = append(lines, "Press Enter to play")
	if s.State == StateGameOver && len(s.TopScores) > 0 {
		lines = append(lines, "", "Top Scores:")
		for i, score := range s.TopScores {
			line := fmt.Sprintf("%d. %.1f", i+1, score)
			if i == s.LastRank {
				line += " <"
			}
			lines = append(lines, line)
		}
	}

	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len(l))
	}
	boxW += 4
	boxH := len(lines) + 2
	if boxW > width || boxH > height-2 {
		// Not enough room for the panel; keep the essentials
		dst.DrawTextCentered(y+height/2, "Press Enter to play")
		return
	}

	bx := x + (width-boxW)/2
	by := y + (height-boxH)/2
	dst.FillRect(bx, by, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(bx, by, boxW, boxH)
	for i, l := range lines {
		dst.DrawText(bx+(boxW-len(l))/2, by+1+i, l)
	}
}

// TierColor returns the display color for a bonus value.
func TierColor(bonus int) core.Color {
	switch {
	case bonus >= 1000:
		return core.ColorOrange
	case bonus >= 100:
		return core.ColorMagenta
	case bonus >= 10:
		return core.ColorBlue
	default:
		return core.ColorGreen
	}
}
