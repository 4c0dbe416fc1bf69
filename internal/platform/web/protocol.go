// Package web serves the spike arena over WebSocket. Each connection plays
// its own arena; finished runs go to the shared leaderboard.
package web

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zromick/SpikeGame/internal/core"
	"github.com/zromick/SpikeGame/internal/games/spikes"
	"github.com/zromick/SpikeGame/internal/loop"
)

// Client message types.
const (
	TypeStart   = "start"
	TypeKeyDown = "keydown"
	TypeKeyUp   = "keyup"
)

// Server message types.
const (
	TypeHello    = "hello"
	TypeSnapshot = "snapshot"
	TypeError    = "error"
)

// ErrBadMessage is wrapped by every rejected client message.
var ErrBadMessage = errors.New("bad message")

// ClientMessage is a command sent by the browser.
type ClientMessage struct {
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
}

// ServerMessage is pushed to the browser.
type ServerMessage struct {
	Type     string           `json:"type"`
	Session  string           `json:"session,omitempty"`
	Snapshot *spikes.Snapshot `json:"snapshot,omitempty"`
	Message  string           `json:"message,omitempty"`
}

// ParseEvent decodes one client frame into a runner event.
func ParseEvent(data []byte) (loop.Event, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return loop.Event{}, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	return msg.Event()
}

// Event converts the message into a runner event.
func (m ClientMessage) Event() (loop.Event, error) {
	var cmd loop.Command
	switch m.Type {
	case TypeStart:
		return loop.Event{Cmd: loop.CmdStart}, nil
	case TypeKeyDown:
		cmd = loop.CmdKeyDown
	case TypeKeyUp:
		cmd = loop.CmdKeyUp
	default:
		return loop.Event{}, fmt.Errorf("%w: unknown type %q", ErrBadMessage, m.Type)
	}

	k := core.ParseKey(m.Key)
	if k == core.KeyNone {
		return loop.Event{}, fmt.Errorf("%w: unknown key %q", ErrBadMessage, m.Key)
	}
	return loop.Event{Cmd: cmd, Key: k}, nil
}

func helloMessage(session string) ServerMessage {
	return ServerMessage{Type: TypeHello, Session: session}
}

func snapshotMessage(s spikes.Snapshot) ServerMessage {
	return ServerMessage{Type: TypeSnapshot, Snapshot: &s}
}

func errorMessage(err error) ServerMessage {
	return ServerMessage{Type: TypeError, Message: err.Error()}
}
