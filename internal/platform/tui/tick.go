// Package tui runs the spike arena in a terminal with Bubble Tea, locally
// or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zromick/SpikeGame/internal/core"
)

// Timer messages carry the epoch of the run that armed them. A message
// from an older epoch is dropped, which cancels every pending timer of a
// finished run without tracking them.
type (
	stepMsg    struct{ epoch int }
	refreshMsg struct{ epoch int }
)

// releaseMsg fires when a horizontal key has not repeated within its hold
// window. seq identifies the press it belongs to.
type releaseMsg struct {
	key core.Key
	seq int
}

func stepCmd(d time.Duration, epoch int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return stepMsg{epoch: epoch}
	})
}

func refreshCmd(d time.Duration, epoch int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return refreshMsg{epoch: epoch}
	})
}

func releaseCmd(d time.Duration, k core.Key, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return releaseMsg{key: k, seq: seq}
	})
}
