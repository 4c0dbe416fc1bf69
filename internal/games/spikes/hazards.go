package spikes

import (
	"math/rand"
	"slices"

	"github.com/zromick/SpikeGame/internal/config"
)

// RowID selects one of the two hazard rows.
type RowID int

const (
	RowTop RowID = iota
	RowBottom
)

// String returns the row name.
func (r RowID) String() string {
	if r == RowTop {
		return "top"
	}
	return "bottom"
}

// Segment is one slot of a hazard row. Bonus is 0 when the segment carries
// none. A segment is never dangerous and bonus-bearing at once.
type Segment struct {
	Dangerous bool `json:"dangerous"`
	Bonus     int  `json:"bonus,omitempty"`
}

// eligible reports whether a bonus may be placed on the segment.
func (s Segment) eligible() bool {
	return !s.Dangerous && s.Bonus == 0
}

// HazardField owns the top and bottom hazard rows and regenerates them
// on every refresh.
type HazardField struct {
	rows     [2][]Segment
	counter  int // refreshes since the session started
	chance   float64
	tiers    []config.BonusTier
	rng      *rand.Rand
	segments int
}

// NewHazardField creates an all-safe field with the given number of
// segments per row.
func NewHazardField(cfg config.SpikesConfig, rng *rand.Rand) *HazardField {
	h := &HazardField{
		chance:   cfg.Hazards.DangerChance,
		tiers:    slices.Clone(cfg.Hazards.BonusTiers),
		rng:      rng,
		segments: cfg.Arena.Segments,
	}
	h.Reset()
	return h
}

// Reset makes every segment safe and bonus-free and zeroes the refresh counter.
func (h *HazardField) Reset() {
	for i := range h.rows {
		h.rows[i] = make([]Segment, h.segments)
	}
	h.counter = 0
}

// Refresh regenerates both rows: fresh danger flags, then one placement
// attempt for every bonus tier whose period divides the refresh counter.
// The counter advances afterwards, so the very first refresh of a session
// attempts every tier.
func (h *HazardField) Refresh() {
	for i := range h.rows {
		for j := range h.rows[i] {
			h.rows[i][j] = Segment{Dangerous: h.rng.Float64() < h.chance}
		}
	}

	for _, tier := range h.tiers {
		if h.counter%tier.Every == 0 {
			h.placeBonus(tier.Value)
		}
	}

	h.counter++
}

// placeBonus puts value on a random eligible segment of a randomly chosen
// row. Nothing happens when that row has no eligible segment; the other
// row is not tried.
func (h *HazardField) placeBonus(value int) (RowID, int, bool) {
	row := RowBottom
	if h.rng.Float64() < 0.5 {
		row = RowTop
	}

	candidates := make([]int, 0, h.segments)
	for i, seg := range h.rows[row] {
		if seg.eligible() {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return row, -1, false
	}

	idx := candidates[h.rng.Intn(len(candidates))]
	h.rows[row][idx].Bonus = value
	return row, idx, true
}

// clearBonus removes the bonus at index i from both rows, whichever row it
// was collected from.
func (h *HazardField) clearBonus(i int) {
	for r := range h.rows {
		h.rows[r][i].Bonus = 0
	}
}

// Segment returns the segment at index i of the given row.
func (h *HazardField) Segment(row RowID, i int) Segment {
	return h.rows[row][i]
}

// Row returns a copy of the given row.
func (h *HazardField) Row(row RowID) []Segment {
	return slices.Clone(h.rows[row])
}

// RefreshCount returns the number of refreshes since the last reset.
func (h *HazardField) RefreshCount() int {
	return h.counter
}
