// Package spikes implements the spike arena: a square that shuttles between
// a top and a bottom row of spikes which turn lethal or carry bonus points
// on every hazard refresh.
//
// The engine is tick driven and not safe for concurrent use. A host calls
// Step on the fast cadence, Refresh on the slow cadence and forwards key
// events in between, all from one goroutine.
package spikes

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/zromick/SpikeGame/internal/config"
	"github.com/zromick/SpikeGame/internal/core"
)

// StepResult is returned by Step after each fast tick.
type StepResult struct {
	State     State
	Collected int  // Bonus points picked up from segments this tick
	EdgeBonus bool // Player completed a traversal this tick
	Ended     bool // The session ended during this tick
}

// Game is one arena with its session state.
type Game struct {
	cfg     config.SpikesConfig
	ctl     controller
	rng     *rand.Rand
	hazards *HazardField
	input   InputState
	player  Player
	state   State
	ticks   int // fast ticks since start
	bonus   int
	last    float64
	rank    int // place of the last run in scores, -1 if it missed the list
	scores  *Scoreboard
}

// New creates an idle game. Invalid configuration is rejected here so the
// simulation never runs with geometry it cannot index.
// A zero seed picks a time-based one.
func New(cfg config.SpikesConfig, seed int64) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("spikes: %w", err)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed))
	g := &Game{
		cfg:     cfg,
		ctl:     newController(cfg),
		rng:     rng,
		hazards: NewHazardField(cfg, rng),
		scores:  NewScoreboard(cfg.Scores.TopN),
		rank:    -1,
	}
	g.player = g.restingPlayer()
	return g, nil
}

// restingPlayer returns the player centered horizontally on the bottom edge.
func (g *Game) restingPlayer() Player {
	return Player{
		Pos: core.Vec{
			X: g.cfg.Arena.Size/2 - g.cfg.Arena.PlayerSize/2,
			Y: g.cfg.MaxPos(),
		},
	}
}

// Start begins a new run from any state. Scores of earlier runs are kept.
func (g *Game) Start() {
	g.player = g.restingPlayer()
	g.ticks = 0
	g.bonus = 0
	g.hazards.Reset()
	g.input.Clear()
	g.state = StatePlaying
}

// KeyDown registers a pressed key. An up/down press sets the vertical
// direction unless a traversal is already under way.
func (g *Game) KeyDown(k core.Key) {
	if g.state != StatePlaying {
		return
	}
	g.input.Press(k)
	if k.Vertical() && !g.player.Locked {
		g.player.Vel.Y = g.ctl.jump(k)
		g.player.Locked = true
	}
}

// KeyUp registers a released key.
func (g *Game) KeyUp(k core.Key) {
	if g.state != StatePlaying {
		return
	}
	g.input.Release(k)
}

// Step advances the simulation by one fast tick: motion first, then
// collisions against the new position.
func (g *Game) Step() StepResult {
	if g.state != StatePlaying {
		return StepResult{State: g.state}
	}

	var res StepResult
	g.player, res.EdgeBonus = g.ctl.advance(g.player, g.input)
	if res.EdgeBonus {
		g.bonus += g.cfg.Motion.EdgeBonus
	}
	g.ticks++

	res.Collected = g.resolveCollisions()
	res.State = g.state
	res.Ended = g.state == StateGameOver
	return res
}

// Refresh regenerates the hazard rows. Ignored unless playing.
func (g *Game) Refresh() {
	if g.state != StatePlaying {
		return
	}
	g.hazards.Refresh()
}

// end finishes the run and records its score. Only the first call of a run
// has any effect.
func (g *Game) end() {
	if g.state != StatePlaying {
		return
	}
	g.last = g.Elapsed() + float64(g.bonus)
	g.rank = g.scores.Insert(g.last)
	g.state = StateGameOver
	g.input.Clear()
}

// Elapsed returns the simulated seconds of the current run.
func (g *Game) Elapsed() float64 {
	return float64(g.ticks) * float64(g.cfg.Timing.TickMS) / 1000
}

// State returns the session state.
func (g *Game) State() State {
	return g.state
}

// Bonus returns the bonus points of the current run.
func (g *Game) Bonus() int {
	return g.bonus
}

// LastScore returns the final score of the most recent finished run.
func (g *Game) LastScore() float64 {
	return g.last
}

// LastRank returns the 0-based place of the most recent finished run in
// TopScores, or -1 if it did not make the list or no run has finished.
func (g *Game) LastRank() int {
	return g.rank
}

// TopScores returns the best scores of this game instance, highest first.
func (g *Game) TopScores() []float64 {
	return g.scores.Scores()
}

// Player returns the player state.
func (g *Game) Player() Player {
	return g.player
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.SpikesConfig {
	return g.cfg
}
