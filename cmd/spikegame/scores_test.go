package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/zromick/SpikeGame/internal/storage"
)

// seedScores writes runs to a fresh database file and points --db at it.
func seedScores(t *testing.T, entries ...storage.Entry) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runs.db")

	store, err := storage.Open(path)
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	for _, e := range entries {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	store.Close()

	oldDB, oldLimit, oldPlayer, oldClear := flagDBPath, flagScoresLimit, flagScoresPlayer, flagScoresClear
	t.Cleanup(func() {
		flagDBPath, flagScoresLimit, flagScoresPlayer, flagScoresClear = oldDB, oldLimit, oldPlayer, oldClear
	})
	flagDBPath = path
	flagScoresLimit = 10
	flagScoresPlayer = ""
	flagScoresClear = false
}

func execScores(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	if err := runScores(cmd, nil); err != nil {
		t.Fatalf("runScores() failed: %v", err)
	}
	return buf.String()
}

var testRuns = []storage.Entry{
	{RunID: "r1", Player: "ann", Score: 12.5, Bonus: 10},
	{RunID: "r2", Player: "bob", Score: 30.5, Bonus: 25},
	{RunID: "r3", Player: "ann", Score: 4.0},
}

func TestScoresTable(t *testing.T) {
	seedScores(t, testRuns...)

	out := execScores(t)

	bob := strings.Index(out, "bob")
	ann := strings.Index(out, "ann")
	if bob < 0 || ann < 0 || bob > ann {
		t.Errorf("runs should be listed best first:\n%s", out)
	}
	if !strings.Contains(out, "3 runs, high score 30.5, average score 15.7") {
		t.Errorf("missing stats line:\n%s", out)
	}
}

func TestScoresPlayerFilter(t *testing.T) {
	seedScores(t, testRuns...)
	flagScoresPlayer = "ann"

	out := execScores(t)

	if !strings.Contains(out, "Spike Runner - ann") {
		t.Errorf("title should name the player:\n%s", out)
	}
	if strings.Contains(out, "bob") || strings.Count(out, "ann") != 3 {
		t.Errorf("only ann's two runs expected:\n%s", out)
	}
}

func TestScoresClear(t *testing.T) {
	seedScores(t, testRuns...)
	flagScoresClear = true

	if out := execScores(t); !strings.Contains(out, "Leaderboard cleared.") {
		t.Errorf("unexpected output:\n%s", out)
	}

	flagScoresClear = false
	if out := execScores(t); !strings.Contains(out, "No runs recorded yet.") {
		t.Errorf("leaderboard should be empty after clearing:\n%s", out)
	}
}

func TestScoresEmpty(t *testing.T) {
	seedScores(t)

	if out := execScores(t); !strings.Contains(out, "No runs recorded yet.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
