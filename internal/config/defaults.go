package config

import _ "embed"

//go:embed defaults/spikes.yaml
var defaultSpikesYAML []byte

// DefaultSpikesConfig returns the hard-coded default configuration.
// It mirrors defaults/spikes.yaml and is used when the embedded file cannot
// be parsed.
func DefaultSpikesConfig() SpikesConfig {
	return SpikesConfig{
		Arena: ArenaConfig{
			Size:        500,
			PlayerSize:  30,
			SpikeHeight: 20,
			Segments:    10,
		},
		Motion: MotionConfig{
			VerticalSpeed:   100,
			CenterSpeed:     150,
			HorizontalSpeed: 50,
			EdgeBonus:       5,
		},
		Hazards: HazardConfig{
			DangerChance: 0.3,
			BonusTiers: []BonusTier{
				{Value: 1, Every: 1},
				{Value: 10, Every: 10},
				{Value: 100, Every: 100},
				{Value: 1000, Every: 1000},
			},
		},
		Timing: TimingConfig{
			TickMS:    100,
			RefreshMS: 2000,
		},
		Scores: ScoresConfig{
			TopN: 5,
		},
	}
}
