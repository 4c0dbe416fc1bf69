// Package config provides YAML-based configuration loading and validation
// for the spike arena.
package config

import "time"

// SpikesConfig contains all tunable parameters of the spike arena.
type SpikesConfig struct {
	Arena   ArenaConfig  `yaml:"arena"`
	Motion  MotionConfig `yaml:"motion"`
	Hazards HazardConfig `yaml:"hazards"`
	Timing  TimingConfig `yaml:"timing"`
	Scores  ScoresConfig `yaml:"scores"`
}

// ArenaConfig defines the geometry of the play field, in arena units.
type ArenaConfig struct {
	Size        float64 `yaml:"size"`         // Side of the square arena
	PlayerSize  float64 `yaml:"player_size"`  // Side of the square player
	SpikeHeight float64 `yaml:"spike_height"` // Depth of each hazard row
	Segments    int     `yaml:"segments"`     // Segments per hazard row
}

// MotionConfig defines player speeds in arena units per second.
type MotionConfig struct {
	VerticalSpeed   float64 `yaml:"vertical_speed"`   // Edge-band vertical speed
	CenterSpeed     float64 `yaml:"center_speed"`     // Center-band vertical speed
	HorizontalSpeed float64 `yaml:"horizontal_speed"`
	EdgeBonus       int     `yaml:"edge_bonus"` // Points for completing a traversal
}

// HazardConfig defines how the hazard rows are regenerated.
type HazardConfig struct {
	DangerChance float64     `yaml:"danger_chance"`
	BonusTiers   []BonusTier `yaml:"bonus_tiers"`
}

// BonusTier places a bonus of Value on every refresh whose counter is a
// multiple of Every.
type BonusTier struct {
	Value int `yaml:"value"`
	Every int `yaml:"every"`
}

// TimingConfig defines the two tick cadences.
type TimingConfig struct {
	TickMS    int `yaml:"tick_ms"`    // Fast tick: motion and collisions
	RefreshMS int `yaml:"refresh_ms"` // Slow tick: hazard refresh
}

// ScoresConfig defines the in-memory high score list.
type ScoresConfig struct {
	TopN int `yaml:"top_n"`
}

// TickInterval returns the fast tick period.
func (c SpikesConfig) TickInterval() time.Duration {
	return time.Duration(c.Timing.TickMS) * time.Millisecond
}

// RefreshInterval returns the hazard refresh period.
func (c SpikesConfig) RefreshInterval() time.Duration {
	return time.Duration(c.Timing.RefreshMS) * time.Millisecond
}

// SegmentWidth returns the width of one hazard segment.
func (c SpikesConfig) SegmentWidth() float64 {
	return c.Arena.Size / float64(c.Arena.Segments)
}

// MaxPos returns the largest valid coordinate of the player's top-left corner.
func (c SpikesConfig) MaxPos() float64 {
	return c.Arena.Size - c.Arena.PlayerSize
}
