package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zromick/SpikeGame/internal/core"
	"github.com/zromick/SpikeGame/internal/games/spikes"
	"github.com/zromick/SpikeGame/internal/platform/tui"
	"github.com/zromick/SpikeGame/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the arena in this terminal.

Controls:
  Up/W       - Jump to the top row
  Down/S     - Fall to the bottom row
  Left/A     - Move left (hold)
  Right/D    - Move right (hold)
  Enter      - Start / restart
  Tab        - Leaderboard (between runs)
  Q/Ctrl+C   - Quit

A jump cannot be reversed until the square reaches the other row.
Reaching a row after a jump is worth 5 bonus points.

Examples:
  spikegame play
  spikegame play --seed 42
  spikegame play --config ./my-spikes.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "name", "", "Player name on the leaderboard (default: login name)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadConfig()
	if err != nil {
		return err
	}
	game, err := spikes.New(gameCfg, flagSeed)
	if err != nil {
		return err
	}

	screen := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		screen.ScreenW, screen.ScreenH = w, h
	}

	player := flagPlayer
	if player == "" {
		if u, userErr := user.Current(); userErr == nil {
			player = u.Username
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// The terminal is busy drawing, so the model logs nowhere.
	runErr := tui.Run(game, store, tui.Options{Player: player, Screen: screen})

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}

	if last := game.LastScore(); last > 0 {
		fmt.Printf("Last score: %.1f\n", last)
	}
	return nil
}
