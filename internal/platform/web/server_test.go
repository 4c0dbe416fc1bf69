package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/zromick/SpikeGame/internal/config"
	"github.com/zromick/SpikeGame/internal/core"
	"github.com/zromick/SpikeGame/internal/games/spikes"
	"github.com/zromick/SpikeGame/internal/loop"
	"github.com/zromick/SpikeGame/internal/storage"
)

func fastConfig() config.SpikesConfig {
	cfg := config.DefaultSpikesConfig()
	cfg.Timing.TickMS = 5
	cfg.Timing.RefreshMS = 25
	return cfg
}

func startServer(t *testing.T, cfg config.SpikesConfig, store *storage.Store) *httptest.Server {
	t.Helper()
	srv, err := NewServer(Config{Game: cfg, Seed: 1}, store, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, query string) (*websocket.Conn, context.Context) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/play" + query
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.CloseNow() })
	return conn, ctx
}

// readUntil reads messages until match accepts one.
func readUntil(t *testing.T, ctx context.Context, conn *websocket.Conn, what string, match func(ServerMessage) bool) ServerMessage {
	t.Helper()
	for {
		var msg ServerMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			t.Fatalf("waiting for %s: %v", what, err)
		}
		if match(msg) {
			return msg
		}
	}
}

func isState(state spikes.State) func(ServerMessage) bool {
	return func(m ServerMessage) bool {
		return m.Type == TypeSnapshot && m.Snapshot != nil && m.Snapshot.State == state
	}
}

func TestHealthz(t *testing.T) {
	ts := startServer(t, fastConfig(), nil)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("GET /healthz = %d %q", resp.StatusCode, body)
	}
}

func TestNewServerRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultSpikesConfig()
	cfg.Arena.Segments = 0
	if _, err := NewServer(Config{Game: cfg}, nil, log.New(io.Discard)); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("NewServer() = %v, expected ErrInvalidConfig", err)
	}
}

func TestHelloThenIdleSnapshot(t *testing.T) {
	ts := startServer(t, fastConfig(), nil)
	conn, ctx := dial(t, ts, "")

	var hello ServerMessage
	if err := wsjson.Read(ctx, conn, &hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello.Type != TypeHello {
		t.Fatalf("first message = %q, expected hello", hello.Type)
	}
	if _, err := uuid.Parse(hello.Session); err != nil {
		t.Errorf("session id %q is not a uuid: %v", hello.Session, err)
	}

	msg := readUntil(t, ctx, conn, "idle snapshot", isState(spikes.StateIdle))
	if msg.Snapshot.Tick != 0 || len(msg.Snapshot.Top) != 10 {
		t.Errorf("unexpected idle snapshot: %+v", msg.Snapshot)
	}
}

func TestStartAndMove(t *testing.T) {
	cfg := fastConfig()
	cfg.Hazards.DangerChance = 0
	ts := startServer(t, cfg, nil)
	conn, ctx := dial(t, ts, "")

	wsjson.Write(ctx, conn, ClientMessage{Type: TypeStart})
	wsjson.Write(ctx, conn, ClientMessage{Type: TypeKeyDown, Key: "ArrowLeft"})

	readUntil(t, ctx, conn, "player moving left", func(m ServerMessage) bool {
		return m.Type == TypeSnapshot && m.Snapshot.State == spikes.StatePlaying && m.Snapshot.Position.X < 235
	})

	wsjson.Write(ctx, conn, ClientMessage{Type: TypeKeyUp, Key: "left"})
	readUntil(t, ctx, conn, "player to stop", func(m ServerMessage) bool {
		return m.Type == TypeSnapshot && m.Snapshot.Velocity.X == 0 && m.Snapshot.Tick > 0
	})
}

func TestBadMessagesAreReported(t *testing.T) {
	ts := startServer(t, fastConfig(), nil)
	conn, ctx := dial(t, ts, "")

	wsjson.Write(ctx, conn, ClientMessage{Type: "jump"})
	msg := readUntil(t, ctx, conn, "error", func(m ServerMessage) bool { return m.Type == TypeError })
	if !strings.Contains(msg.Message, "jump") {
		t.Errorf("error message = %q", msg.Message)
	}

	wsjson.Write(ctx, conn, ClientMessage{Type: TypeKeyDown, Key: "space"})
	msg = readUntil(t, ctx, conn, "error", func(m ServerMessage) bool { return m.Type == TypeError })
	if !strings.Contains(msg.Message, "space") {
		t.Errorf("error message = %q", msg.Message)
	}

	conn.Write(ctx, websocket.MessageText, []byte(`{"type":`))
	msg = readUntil(t, ctx, conn, "error", func(m ServerMessage) bool { return m.Type == TypeError })
	if !strings.Contains(msg.Message, ErrBadMessage.Error()) {
		t.Errorf("error message = %q", msg.Message)
	}

	// The connection survives bad input
	wsjson.Write(ctx, conn, ClientMessage{Type: TypeStart})
	readUntil(t, ctx, conn, "playing snapshot", isState(spikes.StatePlaying))
}

func TestGameOverIsRecorded(t *testing.T) {
	cfg := fastConfig()
	cfg.Hazards.DangerChance = 1
	store, err := storage.Open(storage.MemoryDSN)
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	ts := startServer(t, cfg, store)
	conn, ctx := dial(t, ts, "?name=bob")

	wsjson.Write(ctx, conn, ClientMessage{Type: TypeStart})
	over := readUntil(t, ctx, conn, "game over", isState(spikes.StateGameOver))
	if over.Snapshot.LastScore <= 0 || len(over.Snapshot.TopScores) != 1 {
		t.Errorf("unexpected final snapshot: %+v", over.Snapshot)
	}

	// The save happens right after the final snapshot is published
	deadline := time.Now().Add(2 * time.Second)
	for {
		entries, err := store.TopScores(10)
		if err != nil {
			t.Fatalf("TopScores() failed: %v", err)
		}
		if len(entries) == 1 {
			if entries[0].Player != "bob" || entries[0].Score != over.Snapshot.LastScore {
				t.Errorf("unexpected saved run: %+v", entries[0])
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("run was never saved")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestClientMessageEvent(t *testing.T) {
	tests := []struct {
		msg     ClientMessage
		want    loop.Event
		wantErr bool
	}{
		{ClientMessage{Type: "start"}, loop.Event{Cmd: loop.CmdStart}, false},
		{ClientMessage{Type: "keydown", Key: "up"}, loop.Event{Cmd: loop.CmdKeyDown, Key: core.KeyUp}, false},
		{ClientMessage{Type: "keyup", Key: "ArrowRight"}, loop.Event{Cmd: loop.CmdKeyUp, Key: core.KeyRight}, false},
		{ClientMessage{Type: "keydown", Key: "s"}, loop.Event{Cmd: loop.CmdKeyDown, Key: core.KeyDown}, false},
		{ClientMessage{Type: "keydown"}, loop.Event{}, true},
		{ClientMessage{Type: "pause"}, loop.Event{}, true},
	}

	for _, tc := range tests {
		got, err := tc.msg.Event()
		if tc.wantErr {
			if !errors.Is(err, ErrBadMessage) {
				t.Errorf("%+v: expected ErrBadMessage, got %v", tc.msg, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("%+v: Event() = %+v, %v", tc.msg, got, err)
		}
	}
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    loop.Event
		wantErr bool
	}{
		{"start", `{"type":"start"}`, loop.Event{Cmd: loop.CmdStart}, false},
		{"key down", `{"type":"keydown","key":"left"}`, loop.Event{Cmd: loop.CmdKeyDown, Key: core.KeyLeft}, false},
		{"truncated", `{"type":`, loop.Event{}, true},
		{"not an object", `[1,2]`, loop.Event{}, true},
		{"wrong field type", `{"type":7}`, loop.Event{}, true},
		{"unknown type", `{"type":"pause"}`, loop.Event{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseEvent([]byte(tc.data))
			if tc.wantErr {
				if !errors.Is(err, ErrBadMessage) {
					t.Errorf("expected ErrBadMessage, got %v", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("ParseEvent() = %+v, %v", got, err)
			}
		})
	}
}
