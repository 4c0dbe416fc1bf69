package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zromick/SpikeGame/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best runs recorded in a leaderboard database.

The default database lives in memory and is empty at start, so this is
only useful with a file written by 'serve', 'web' or 'play'.

Examples:
  spikegame scores --db ~/.spikegame/runs.db
  spikegame scores --db ./runs.db --limit 20
  spikegame scores --db ./runs.db --player ann
  spikegame scores --db ./runs.db --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show runs of this player")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagScoresClear {
		if err := store.ClearScores(); err != nil {
			return fmt.Errorf("error clearing scores: %w", err)
		}
		fmt.Fprintln(out, "Leaderboard cleared.")
		return nil
	}

	var entries []storage.Entry
	if flagScoresPlayer != "" {
		entries, err = store.PlayerScores(flagScoresPlayer, flagScoresLimit)
	} else {
		entries, err = store.TopScores(flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	if flagScoresPlayer != "" {
		fmt.Fprintf(out, "High Scores - Spike Runner - %s\n", flagScoresPlayer)
	} else {
		fmt.Fprintln(out, "High Scores - Spike Runner")
	}
	fmt.Fprintln(out)

	if len(entries) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-14s  %-8s  %-6s  %s\n", "Rank", "Player", "Score", "Bonus", "Date")
	fmt.Fprintf(out, "  %-4s  %-14s  %-8s  %-6s  %s\n", "----", "------", "-----", "-----", "----")
	for i, e := range entries {
		fmt.Fprintf(out, "  %-4d  %-14s  %-8.1f  %-6d  %s\n", i+1, e.Player, e.Score, e.Bonus, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetStats()
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d runs, high score %.1f, average score %.1f\n", stats.Runs, stats.HighScore, stats.AvgScore)
	return nil
}
