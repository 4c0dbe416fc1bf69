package spikes

import "github.com/zromick/SpikeGame/internal/core"

// InputState tracks which directional keys are currently held.
// It is pure state: key events set and clear flags, ticks read them.
type InputState struct {
	held [core.NumKeys]bool
}

// Press marks the key as held.
func (s *InputState) Press(k core.Key) {
	if k > core.KeyNone && int(k) < core.NumKeys {
		s.held[k] = true
	}
}

// Release marks the key as no longer held.
func (s *InputState) Release(k core.Key) {
	if k > core.KeyNone && int(k) < core.NumKeys {
		s.held[k] = false
	}
}

// Held reports whether the key is currently held.
func (s InputState) Held(k core.Key) bool {
	if k <= core.KeyNone || int(k) >= core.NumKeys {
		return false
	}
	return s.held[k]
}

// Clear releases every key.
func (s *InputState) Clear() {
	s.held = [core.NumKeys]bool{}
}
