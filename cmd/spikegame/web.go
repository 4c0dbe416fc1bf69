package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zromick/SpikeGame/internal/platform/web"
	"github.com/zromick/SpikeGame/internal/storage"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the WebSocket server",
	Long: `Start an HTTP server with a WebSocket endpoint for browser clients.

Endpoints:
  GET /play?name=<player>  - WebSocket; one arena per connection
  GET /healthz             - Liveness check

Client messages (JSON):
  {"type":"start"}
  {"type":"keydown","key":"left"}
  {"type":"keyup","key":"left"}

The server answers with {"type":"hello"} and then streams
{"type":"snapshot"} messages as the arena changes.

Examples:
  spikegame web
  spikegame web --addr :9000 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger, err := newLogger("spikegame-web")
	if err != nil {
		return err
	}
	gameCfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	cfg := web.DefaultConfig()
	cfg.Address = flagWebAddr
	cfg.Game = gameCfg
	cfg.Seed = flagSeed

	server, err := web.NewServer(cfg, store, logger)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Connect a client to ws://localhost:%s/play\n", portOf(cfg.Address))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx)
}

// portOf returns the port of a host:port address, or the address itself.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
