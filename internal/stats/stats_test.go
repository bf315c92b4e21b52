package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuicard/internal/model"
)

func TestAccuracy(t *testing.T) {
	if got := Accuracy(0, 0); got != 0 {
		t.Fatalf("accuracy with no answers should be 0, got %v", got)
	}
	if got := Accuracy(3, 1); math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("expected 0.75, got %v", got)
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	out := MovingAverage(values, 2)
	want := []float64{1, 1.5, 2.5, 3.5}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-9 {
			t.Fatalf("got %v, want %v", out, want)
		}
	}
	out = MovingAverage(values, 1)
	for i := range values {
		if out[i] != values[i] {
			t.Fatalf("window 1 should copy values, got %v", out)
		}
	}
}

func TestLevelDistribution(t *testing.T) {
	words := []model.WordAggregate{
		{Word: "a", Level: 0},
		{Word: "b", Level: 0},
		{Word: "c", Level: 3},
		{Word: "d", Level: 5},
	}
	dist := LevelDistribution(words)
	if dist[0] != 2 || dist[3] != 1 || dist[5] != 1 {
		t.Fatalf("unexpected distribution %v", dist)
	}
	if dist[1] != 0 || dist[2] != 0 || dist[4] != 0 {
		t.Fatalf("unexpected distribution %v", dist)
	}
}

func TestDueForecast(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	words := []model.WordAggregate{
		{Word: "overdue", Due: now.Add(-48 * time.Hour)},
		{Word: "today", Due: now},
		{Word: "tomorrow", Due: now.Add(30 * time.Hour)},
		{Word: "nextweek", Due: now.Add(7 * 24 * time.Hour)},
		{Word: "faraway", Due: now.Add(40 * 24 * time.Hour)},
	}
	counts := DueForecast(words, now, 31)
	if len(counts) != 31 {
		t.Fatalf("expected 31 days, got %d", len(counts))
	}
	if counts[0] != 2 {
		t.Fatalf("expected 2 words on day 0, got %v", counts[0])
	}
	if counts[1] != 1 || counts[7] != 1 {
		t.Fatalf("unexpected forecast %v", counts)
	}
	var total float64
	for _, c := range counts {
		total += c
	}
	if total != 4 {
		t.Fatalf("words past the horizon should be dropped, got total %v", total)
	}
}

func TestFormatDue(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		due  time.Time
		want string
	}{
		{now.Add(-time.Hour), "now"},
		{now, "now"},
		{now.Add(2 * time.Hour), "today"},
		{now.Add(36 * time.Hour), "in 1d"},
		{now.Add(30 * 24 * time.Hour), "in 30d"},
	}
	for _, c := range cases {
		if got := FormatDue(c.due, now); got != c.want {
			t.Errorf("FormatDue(%v) = %q, want %q", c.due, got, c.want)
		}
	}
}

func TestSelectHardestWords(t *testing.T) {
	words := []model.WordAggregate{
		{Word: "easy", Correct: 9, Incorrect: 1},
		{Word: "hard", Correct: 1, Incorrect: 9},
		{Word: "medium", Correct: 5, Incorrect: 5},
		{Word: "new"},
	}
	hardest := SelectHardestWords(words, 2)
	if len(hardest) != 2 {
		t.Fatalf("expected 2 words, got %v", hardest)
	}
	if hardest[0] != "hard" || hardest[1] != "medium" {
		t.Fatalf("unexpected order %v", hardest)
	}
	all := SelectHardestWords(words, 0)
	if len(all) != 4 || all[3] != "new" {
		t.Fatalf("unreviewed words should sort last, got %v", all)
	}
}

func TestRenderSummary(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	words := []model.WordAggregate{
		{Word: "a", Level: 5, Due: now.Add(30 * 24 * time.Hour), Reviews: 8, Correct: 7, Incorrect: 1},
		{Word: "b", Level: 0, Due: now, Reviews: 2, Correct: 1, Incorrect: 1},
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, words, now); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Words: 2", "Due now: 1", "Mastered: 1", "Reviews: 10", "Accuracy: 80.00%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderWordTable(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	words := []model.WordAggregate{
		{Word: "easy", Level: 3, Due: now.Add(7 * 24 * time.Hour), Reviews: 10, Correct: 9, Incorrect: 1},
		{Word: "hard", Level: 1, Due: now, Reviews: 10, Correct: 2, Incorrect: 8},
	}
	var buf bytes.Buffer
	if err := RenderWordTable(&buf, words, now); err != nil {
		t.Fatalf("render word table: %v", err)
	}
	out := buf.String()
	hardIdx := strings.Index(out, "hard")
	easyIdx := strings.Index(out, "easy")
	if hardIdx < 0 || easyIdx < 0 {
		t.Fatalf("expected both words in output:\n%s", out)
	}
	if hardIdx > easyIdx {
		t.Fatalf("hardest word should come first:\n%s", out)
	}
}
