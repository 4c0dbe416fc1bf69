package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/zromick/SpikeGame/internal/config"
	"github.com/zromick/SpikeGame/internal/games/spikes"
	"github.com/zromick/SpikeGame/internal/loop"
	"github.com/zromick/SpikeGame/internal/storage"
)

// Config holds configuration for the WebSocket server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Game is the arena configuration every connection is built from.
	Game config.SpikesConfig

	// Seed fixes the hazard RNG of every connection; 0 gives each its own.
	Seed int64

	// WriteTimeout bounds a single frame write.
	WriteTimeout time.Duration
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:      ":8080",
		Game:         config.DefaultSpikesConfig(),
		WriteTimeout: 5 * time.Second,
	}
}

// Server serves GET /play (WebSocket) and GET /healthz.
type Server struct {
	config Config
	store  *storage.Store
	logger *log.Logger
	mux    *http.ServeMux
}

// NewServer creates a server. store may be nil.
func NewServer(cfg Config, store *storage.Store, logger *log.Logger) (*Server, error) {
	if err := cfg.Game.Validate(); err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "spikegame-web",
		})
	}

	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /play", s.handlePlay)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}
	s.logger.Info("starting web server", "address", s.config.Address)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web: http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// handlePlay upgrades the request and runs one arena for the connection.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.logger.Error("failed to accept", "error", err)
		return
	}
	defer conn.CloseNow()

	id := uuid.NewString()
	player := r.URL.Query().Get("name")
	if player == "" {
		player = "web"
	}
	logger := s.logger.With("session", id)
	logger.Info("session started", "player", player, "remote", r.RemoteAddr)

	err = s.serve(r.Context(), conn, id, player, logger)
	switch {
	case err == nil,
		errors.Is(err, context.Canceled),
		websocket.CloseStatus(err) == websocket.StatusNormalClosure,
		websocket.CloseStatus(err) == websocket.StatusGoingAway:
		logger.Info("session ended")
		conn.Close(websocket.StatusNormalClosure, "")
	default:
		logger.Warn("session failed", "error", err)
		conn.Close(websocket.StatusInternalError, "internal error")
	}
}

// connection holds the per-connection outbound queues.
type connection struct {
	conn   *websocket.Conn
	out    chan ServerMessage   // hello and error messages
	snaps  chan spikes.Snapshot // latest snapshot only
	logger *log.Logger
}

// serve runs the reader, the runner and the writer until one of them stops.
func (s *Server) serve(ctx context.Context, conn *websocket.Conn, id, player string, logger *log.Logger) error {
	game, err := spikes.New(s.config.Game, s.config.Seed)
	if err != nil {
		return err
	}

	c := &connection{
		conn:   conn,
		out:    make(chan ServerMessage, 16),
		snaps:  make(chan spikes.Snapshot, 1),
		logger: logger,
	}

	runner, err := loop.New(loop.Config{
		Game:     game,
		Publish:  c.publish,
		GameOver: func(snap spikes.Snapshot) { s.saveRun(player, snap, logger) },
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	// Hello goes out before any snapshot can.
	if err := wsjson.Write(ctx, conn, helloMessage(id)); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return c.readLoop(ctx, runner)
	})
	g.Go(func() error {
		return runner.Run(ctx)
	})
	g.Go(func() error {
		return c.writeLoop(ctx, s.config.WriteTimeout)
	})
	return g.Wait()
}

// readLoop decodes client messages and queues them on the runner.
// Bad messages are answered with an error message and otherwise ignored.
func (c *connection) readLoop(ctx context.Context, runner *loop.Runner) error {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return err
		}

		ev, err := ParseEvent(data)
		if err != nil {
			c.send(errorMessage(err))
			continue
		}
		if err := runner.Submit(ctx, ev); err != nil {
			return err
		}
	}
}

// writeLoop sends queued messages and snapshots to the client.
func (c *connection) writeLoop(ctx context.Context, timeout time.Duration) error {
	for {
		var msg ServerMessage
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg = <-c.out:
		case snap := <-c.snaps:
			msg = snapshotMessage(snap)
		}

		wctx, cancel := context.WithTimeout(ctx, timeout)
		err := wsjson.Write(wctx, c.conn, msg)
		cancel()
		if err != nil {
			return err
		}
	}
}

// send queues a control message, dropping it if the client is too slow.
func (c *connection) send(msg ServerMessage) {
	select {
	case c.out <- msg:
	default:
		c.logger.Warn("write queue full, message dropped", "type", msg.Type)
	}
}

// publish replaces any unsent snapshot with the latest one. Only the
// runner goroutine calls it.
func (c *connection) publish(snap spikes.Snapshot) {
	for {
		select {
		case c.snaps <- snap:
			return
		default:
		}
		select {
		case <-c.snaps:
		default:
		}
	}
}

// saveRun records a finished run. Failures are logged, the session goes on.
func (s *Server) saveRun(player string, snap spikes.Snapshot, logger *log.Logger) {
	if s.store == nil {
		return
	}
	_, err := s.store.SaveScore(storage.Entry{
		RunID:   uuid.NewString(),
		Player:  player,
		Score:   snap.LastScore,
		Elapsed: snap.Elapsed,
		Bonus:   snap.Bonus,
	})
	if err != nil {
		logger.Warn("could not save score", "error", err)
	}
}
