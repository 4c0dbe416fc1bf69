package spikes

import (
	"strings"
	"testing"

	"github.com/zromick/SpikeGame/internal/core"
)

// On an 80x24 screen the arena is 40x21 inner cells starting at (20, 2),
// so each of the 10 segments is 4 cells wide.
const (
	testInnerX  = 20
	testTopY    = 2
	testBottomY = 22
)

func TestRenderIdleOverlay(t *testing.T) {
	g := newTestGame(t, 1)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "SPIKE RUNNER") || !strings.Contains(out, "Press Enter to play") {
		t.Errorf("idle screen should show the title panel:\n%s", out)
	}
	if strings.Contains(out, "Last Score") {
		t.Error("no run has finished, last score should be hidden")
	}
	if strings.TrimSpace(screen.Row(0)) != "" {
		t.Errorf("HUD should be hidden while idle, got %q", screen.Row(0))
	}
}

func TestRenderHUD(t *testing.T) {
	g := newTestGame(t, 1)
	g.Start()
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if got := strings.TrimSpace(screen.Row(0)); got != "0.0 + 0" {
		t.Errorf("HUD = %q, expected %q", got, "0.0 + 0")
	}
	if strings.Contains(screen.String(), "Press Enter") {
		t.Error("overlay should be hidden while playing")
	}

	g.bonus = 15
	g.Step()
	g.Render(screen)
	if got := strings.TrimSpace(screen.Row(0)); got != "0.1 + 15" {
		t.Errorf("HUD = %q, expected %q", got, "0.1 + 15")
	}
}

func TestRenderArenaBox(t *testing.T) {
	g := newTestGame(t, 1)
	g.Start()
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if screen.Get(testInnerX-1, 1) != '┌' || screen.Get(testInnerX+40, 1) != '┐' {
		t.Error("top corners of the arena box are misplaced")
	}
	if screen.Get(testInnerX-1, 23) != '└' || screen.Get(testInnerX+40, 23) != '┘' {
		t.Error("bottom corners of the arena box are misplaced")
	}
	for x := testInnerX; x < testInnerX+40; x++ {
		if screen.Get(x, testTopY) != TopSpikeSafe {
			t.Fatalf("top row at x=%d = %q, expected safe spike", x, screen.Get(x, testTopY))
		}
		if screen.Get(x, testBottomY) != BottomSpikeSafe {
			t.Fatalf("bottom row at x=%d = %q, expected safe spike", x, screen.Get(x, testBottomY))
		}
	}
}

func TestRenderSegments(t *testing.T) {
	g := newTestGame(t, 1)
	g.Start()
	g.hazards.rows[RowTop][0].Dangerous = true
	g.hazards.rows[RowTop][1].Bonus = 10
	g.hazards.rows[RowBottom][9].Bonus = 1000
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	for _, x := range []int{20, 21, 23} {
		c := screen.GetCell(x, testTopY)
		if c.Rune != TopSpikeLethal || c.Color != core.ColorRed {
			t.Errorf("dangerous segment at x=%d = %+v", x, c)
		}
	}
	if screen.Get(22, testTopY) != DangerMark {
		t.Errorf("danger mark missing, got %q", screen.Get(22, testTopY))
	}

	if screen.Get(25, testTopY) != '1' || screen.Get(26, testTopY) != '0' {
		t.Errorf("bonus label misplaced: %q", screen.Row(testTopY))
	}
	if c := screen.GetCell(24, testTopY); c.Rune != TopSpikeSafe || c.Color != core.ColorBlue {
		t.Errorf("bonus segment should keep its spike in the tier color, got %+v", c)
	}

	if got := string([]rune(screen.Row(testBottomY))[56:60]); got != "1000" {
		t.Errorf("1000 bonus label = %q", got)
	}
}

func TestRenderPlayer(t *testing.T) {
	g := newTestGame(t, 1)
	g.Start()
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	// x 235/500 of 40 cells is column 18, y 470/500 of 21 rows is row 19
	for _, x := range []int{testInnerX + 18, testInnerX + 19} {
		if screen.Get(x, testTopY+19) != PlayerChar {
			t.Errorf("player missing at (%d, %d)", x, testTopY+19)
		}
	}
	if screen.Get(testInnerX+17, testTopY+19) == PlayerChar {
		t.Error("player drawn too wide")
	}
}

func TestRenderGameOver(t *testing.T) {
	g := newTestGame(t, 1)
	g.Start()
	g.player.Pos.Y = 0
	g.hazards.rows[RowTop][4].Dangerous = true
	g.Step()
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Last Score: 0.1", "Top Scores:", "1. 0.1 <", "Press Enter to play"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over screen missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, 1)
	g.Start()
	screen := core.NewScreen(20, 8)

	g.Render(screen)

	if !strings.Contains(screen.String(), "Terminal too small") {
		t.Errorf("expected a size warning:\n%s", screen.String())
	}
}

func TestTierColor(t *testing.T) {
	tests := map[int]core.Color{
		1:    core.ColorGreen,
		10:   core.ColorBlue,
		100:  core.ColorMagenta,
		1000: core.ColorOrange,
	}
	for bonus, want := range tests {
		if got := TierColor(bonus); got != want {
			t.Errorf("TierColor(%d) = %v, expected %v", bonus, got, want)
		}
	}
}
