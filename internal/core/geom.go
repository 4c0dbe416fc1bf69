// Package core provides fundamental types and utilities for the game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec is a point or displacement in continuous arena units.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sign returns -1, 0 or +1 depending on the sign of val.
func Sign(val float64) float64 {
	switch {
	case val > 0:
		return 1
	case val < 0:
		return -1
	default:
		return 0
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

// Scale maps v from a [0, from) range onto a [0, to) cell grid.
func Scale(v, from float64, to int) int {
	if from <= 0 {
		return 0
	}
	return Clamp(int(v/from*float64(to)), 0, to-1)
}
