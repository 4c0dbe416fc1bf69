// spikegame is a terminal arcade game: a square shuttles between two rows
// of spikes that turn lethal or carry bonus points every few seconds.
//
// Usage:
//
//	spikegame play      - Play in this terminal
//	spikegame serve     - Start SSH server for remote play
//	spikegame web       - Start WebSocket server for browser clients
//	spikegame scores    - Show the leaderboard of a database file
//	spikegame config    - Print the effective game configuration
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible hazards
//	--config <path>      - Load game configuration from a YAML file
//	--db <dsn>           - Leaderboard database (default: in memory)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zromick/SpikeGame/internal/config"
	"github.com/zromick/SpikeGame/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spikegame",
	Short: "Spike Runner - dodge spikes in your terminal",
	Long: `Spike Runner is a terminal arcade game. Jump between the top and bottom
rows of spikes, avoid the lethal ones and collect bonus points.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  web      - Start WebSocket server for browser clients
  scores   - Show the leaderboard
  config   - Print the effective configuration

Examples:
  spikegame play
  spikegame play --seed 42
  spikegame serve --ssh :2222
  spikegame web --addr :8080
  spikegame config > my-spikes.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.MemoryDSN, "Leaderboard database path (:memory: keeps it in process)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates the server logger with the level from --log-level.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadConfig loads the game configuration selected by --config.
func loadConfig() (config.SpikesConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.SpikesConfig{}, fmt.Errorf("cannot load config: %w", err)
	}
	return cfg, nil
}
