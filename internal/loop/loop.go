// Package loop drives one spike arena from a single goroutine for hosts
// that have no event loop of their own.
//
// Commands are queued by any goroutine; the runner applies them between
// ticks so the engine is only ever touched from Run.
package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/zromick/SpikeGame/internal/core"
	"github.com/zromick/SpikeGame/internal/games/spikes"
)

// Command identifies what an Event asks the runner to do.
type Command int

const (
	CmdStart Command = iota
	CmdKeyDown
	CmdKeyUp
)

// Event is one queued command. Key is ignored for CmdStart.
type Event struct {
	Cmd Command
	Key core.Key
}

// ErrStopped is returned by Submit once Run has returned.
var ErrStopped = errors.New("loop: stopped")

// Config controls a Runner.
type Config struct {
	Game *spikes.Game

	// Publish receives a snapshot after every command and tick that
	// changed the game. Called from the runner goroutine.
	Publish func(spikes.Snapshot)

	// GameOver receives the final snapshot once per finished run.
	GameOver func(spikes.Snapshot)

	QueueSize int
	Logger    *log.Logger
}

// Runner owns the game and both tickers.
type Runner struct {
	game     *spikes.Game
	publish  func(spikes.Snapshot)
	gameOver func(spikes.Snapshot)
	events   chan Event
	logger   *log.Logger

	tickEvery    time.Duration
	refreshEvery time.Duration

	tick    *time.Ticker
	refresh *time.Ticker

	running atomic.Bool
	stopped atomic.Bool
	done    chan struct{}
}

// New creates a Runner for the given game.
func New(cfg Config) (*Runner, error) {
	if cfg.Game == nil {
		return nil, errors.New("loop: game is required")
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	publish := cfg.Publish
	if publish == nil {
		publish = func(spikes.Snapshot) {}
	}
	gameOver := cfg.GameOver
	if gameOver == nil {
		gameOver = func(spikes.Snapshot) {}
	}

	gc := cfg.Game.Config()
	return &Runner{
		game:         cfg.Game,
		publish:      publish,
		gameOver:     gameOver,
		events:       make(chan Event, queueSize),
		logger:       logger,
		tickEvery:    gc.TickInterval(),
		refreshEvery: gc.RefreshInterval(),
		done:         make(chan struct{}),
	}, nil
}

// Run processes events and ticks until ctx is done. It must be called once.
// The current snapshot is published on entry.
func (r *Runner) Run(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return errors.New("loop: run called multiple times")
	}
	defer close(r.done)
	defer r.stopTimers()
	defer r.stopped.Store(true)

	r.publish(r.game.Snapshot())
	if r.game.State() == spikes.StatePlaying {
		r.armTimers()
	}

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("runner stopped", "reason", ctx.Err())
			return ctx.Err()

		case ev := <-r.events:
			r.apply(ev)

		case <-tickC(r.tick):
			res := r.game.Step()
			if res.Collected > 0 {
				r.logger.Debug("bonus collected", "points", res.Collected)
			}
			snap := r.game.Snapshot()
			r.publish(snap)
			if res.Ended {
				r.finish(snap)
			}

		case <-tickC(r.refresh):
			r.game.Refresh()
			r.publish(r.game.Snapshot())
		}
	}
}

// apply runs one queued command against the game.
func (r *Runner) apply(ev Event) {
	switch ev.Cmd {
	case CmdStart:
		r.game.Start()
		r.armTimers()
		r.logger.Debug("run started")
	case CmdKeyDown:
		r.game.KeyDown(ev.Key)
	case CmdKeyUp:
		r.game.KeyUp(ev.Key)
	default:
		r.logger.Warn("unknown command", "cmd", ev.Cmd)
		return
	}
	r.publish(r.game.Snapshot())
}

// finish stops the timers and reports a finished run.
func (r *Runner) finish(snap spikes.Snapshot) {
	r.stopTimers()
	r.logger.Info("game over", "score", snap.LastScore, "elapsed", snap.Elapsed, "bonus", snap.Bonus, "rank", snap.LastRank+1)
	r.gameOver(snap)
}

// armTimers (re)starts both tickers, so the first refresh of a run comes a
// full period after it begins.
func (r *Runner) armTimers() {
	r.stopTimers()
	r.tick = time.NewTicker(r.tickEvery)
	r.refresh = time.NewTicker(r.refreshEvery)
}

func (r *Runner) stopTimers() {
	if r.tick != nil {
		r.tick.Stop()
		r.tick = nil
	}
	if r.refresh != nil {
		r.refresh.Stop()
		r.refresh = nil
	}
}

// tickC returns the ticker channel, or nil (blocks forever) when stopped.
func tickC(t *time.Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// Submit queues an event for the runner. Events submitted before Run
// starts are applied once it does.
func (r *Runner) Submit(ctx context.Context, ev Event) error {
	if r.stopped.Load() {
		return ErrStopped
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return ErrStopped
	case r.events <- ev:
		return nil
	}
}

// Done is closed once Run has returned.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}
