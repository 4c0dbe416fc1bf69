package spikes

import (
	"fmt"
	"slices"
)

// State is the session state machine: idle -> playing -> game over -> playing.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateGameOver
)

// String returns the wire name of the state.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "idle"
	}
}

// MarshalText encodes the state by name so snapshots read well as JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StateIdle
	case "playing":
		*s = StatePlaying
	case "game_over":
		*s = StateGameOver
	default:
		return fmt.Errorf("spikes: unknown state %q", text)
	}
	return nil
}

// Scoreboard keeps the best scores of the process, highest first.
// Equal scores keep insertion order.
type Scoreboard struct {
	limit  int
	scores []float64
}

// NewScoreboard creates a scoreboard holding at most limit entries.
func NewScoreboard(limit int) *Scoreboard {
	return &Scoreboard{
		limit:  limit,
		scores: make([]float64, 0, limit+1),
	}
}

// Insert records a score. Returns the 0-based rank it landed at,
// or -1 if it did not make the list.
func (b *Scoreboard) Insert(score float64) int {
	pos := len(b.scores)
	for i, s := range b.scores {
		if score > s {
			pos = i
			break
		}
	}
	b.scores = slices.Insert(b.scores, pos, score)
	if len(b.scores) > b.limit {
		b.scores = b.scores[:b.limit]
	}
	if pos >= b.limit {
		return -1
	}
	return pos
}

// Scores returns a copy of the list.
func (b *Scoreboard) Scores() []float64 {
	return slices.Clone(b.scores)
}
