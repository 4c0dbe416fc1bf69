package tui

import (
	"time"

	"github.com/zromick/SpikeGame/internal/core"
)

// Terminals report key presses and auto-repeats but never releases.
// A horizontal key counts as held while repeats keep arriving; the first
// repeat is slower than the rest on most keyboards, so it gets a longer
// grace window.
const (
	holdWindow        = 150 * time.Millisecond
	firstRepeatWindow = 600 * time.Millisecond
)

// holdTracker synthesizes key releases for the horizontal keys.
type holdTracker struct {
	seq  [core.NumKeys]int
	held [core.NumKeys]bool
}

// press records a press or repeat of k. Returns the sequence number of this
// press and how long to wait for the next one before releasing.
func (h *holdTracker) press(k core.Key) (int, time.Duration) {
	window := holdWindow
	if !h.held[k] {
		window = firstRepeatWindow
	}
	h.held[k] = true
	h.seq[k]++
	return h.seq[k], window
}

// expire reports whether the release for press seq is still current, and
// if so marks k released.
func (h *holdTracker) expire(k core.Key, seq int) bool {
	if !h.held[k] || h.seq[k] != seq {
		return false
	}
	h.held[k] = false
	return true
}

// reset forgets every held key. Pending releases become stale.
func (h *holdTracker) reset() {
	for k := range h.held {
		h.held[k] = false
		h.seq[k]++
	}
}
