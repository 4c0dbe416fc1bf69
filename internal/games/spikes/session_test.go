package spikes

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestScoreboardKeepsBestSorted(t *testing.T) {
	b := NewScoreboard(5)
	for _, s := range []float64{3.2, 10.5, 1.1, 7.0, 4.4, 2.0, 12.3} {
		b.Insert(s)
	}

	expected := []float64{12.3, 10.5, 7.0, 4.4, 3.2}
	if got := b.Scores(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Scores() = %v, expected %v", got, expected)
	}
}

func TestScoreboardRank(t *testing.T) {
	b := NewScoreboard(3)

	tests := []struct {
		score float64
		rank  int
	}{
		{5, 0},
		{9, 0},
		{7, 1},
		{1, -1}, // list is full of larger scores
		{6, 2},
		{100, 0},
	}

	for _, tc := range tests {
		if got := b.Insert(tc.score); got != tc.rank {
			t.Errorf("Insert(%v) = %d, expected %d (list %v)", tc.score, got, tc.rank, b.Scores())
		}
	}
	if got := b.Scores(); !reflect.DeepEqual(got, []float64{100, 9, 7}) {
		t.Errorf("Scores() = %v", got)
	}
}

func TestScoreboardTiesKeepInsertionOrder(t *testing.T) {
	b := NewScoreboard(5)
	b.Insert(4)
	b.Insert(4)

	if rank := b.Insert(4); rank != 2 {
		t.Errorf("an equal score should rank after earlier ones, got %d", rank)
	}
	b.Insert(2)
	b.Insert(2)
	if rank := b.Insert(2); rank != -1 {
		t.Errorf("a tie at the cutoff should not displace the older entry, got %d", rank)
	}
}

func TestScoreboardEmpty(t *testing.T) {
	b := NewScoreboard(5)
	if len(b.Scores()) != 0 {
		t.Errorf("empty scoreboard: scores %v", b.Scores())
	}

	b.Insert(3)
	scores := b.Scores()
	scores[0] = 99
	if b.Scores()[0] != 3 {
		t.Error("Scores() should return a copy")
	}
}

func TestStateNames(t *testing.T) {
	tests := []struct {
		state State
		name  string
	}{
		{StateIdle, "idle"},
		{StatePlaying, "playing"},
		{StateGameOver, "game_over"},
	}

	for _, tc := range tests {
		if tc.state.String() != tc.name {
			t.Errorf("%d.String() = %q, expected %q", tc.state, tc.state.String(), tc.name)
		}
		data, err := json.Marshal(tc.state)
		if err != nil {
			t.Fatalf("json.Marshal(%v): %v", tc.state, err)
		}
		if string(data) != `"`+tc.name+`"` {
			t.Errorf("json.Marshal(%v) = %s", tc.state, data)
		}
		var back State
		if err := json.Unmarshal(data, &back); err != nil || back != tc.state {
			t.Errorf("json.Unmarshal(%s) = %v, %v", data, back, err)
		}
	}
}

func TestStateRejectsUnknownName(t *testing.T) {
	var s State
	if err := json.Unmarshal([]byte(`"paused"`), &s); err == nil {
		t.Error("unknown state name should fail to decode")
	}
}
