package spikes

import "github.com/zromick/SpikeGame/internal/core"

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	State        State     `json:"state"`
	Position     core.Vec  `json:"position"`
	Velocity     core.Vec  `json:"velocity"`
	Locked       bool      `json:"locked"`
	Top          []Segment `json:"top"`
	Bottom       []Segment `json:"bottom"`
	Elapsed      float64   `json:"elapsed"`
	Bonus        int       `json:"bonus"`
	LastScore    float64   `json:"last_score"`
	LastRank     int       `json:"last_rank"` // index into TopScores, -1 if none
	TopScores    []float64 `json:"top_scores"`
	Tick         int       `json:"tick"`
	RefreshCount int       `json:"refresh_count"`
	ArenaSize    float64   `json:"arena_size"`
	PlayerSize   float64   `json:"player_size"`
	SpikeHeight  float64   `json:"spike_height"`
}

// Snapshot returns the current state. The result shares no memory with the game.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		State:        g.state,
		Position:     g.player.Pos,
		Velocity:     g.player.Vel,
		Locked:       g.player.Locked,
		Top:          g.hazards.Row(RowTop),
		Bottom:       g.hazards.Row(RowBottom),
		Elapsed:      g.Elapsed(),
		Bonus:        g.bonus,
		LastScore:    g.last,
		LastRank:     g.rank,
		TopScores:    g.scores.Scores(),
		Tick:         g.ticks,
		RefreshCount: g.hazards.RefreshCount(),
		ArenaSize:    g.cfg.Arena.Size,
		PlayerSize:   g.cfg.Arena.PlayerSize,
		SpikeHeight:  g.cfg.Arena.SpikeHeight,
	}
}

// Score returns elapsed time plus bonus, the value a run would end with now.
func (s Snapshot) Score() float64 {
	return s.Elapsed + float64(s.Bonus)
}
