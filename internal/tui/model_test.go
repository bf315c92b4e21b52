package tui

import (
	"context"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuicard/internal/model"
	"github.com/verte-zerg/tuicard/internal/srs"
	"github.com/verte-zerg/tuicard/internal/store"
)

func newTestModel(t *testing.T, cfg model.Config, words []string, items map[string]srs.Item, now time.Time) (*Model, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tuicard.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	sched := srs.NewFromSource(rand.NewSource(1))
	m := NewModel(cfg, st, sched, words, items)
	m.now = func() time.Time { return now }
	// The queue was filled with the wall clock; refill it under the frozen one.
	m.refillQueue()
	return m, st
}

func TestSessionFlow(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	items := map[string]srs.Item{
		"beta": {Word: "beta", Level: 1, Due: now.Add(-time.Hour), Reviews: 2},
	}
	m, st := newTestModel(t, model.Config{}, []string{"alpha", "beta"}, items, now)

	// alpha has no state, so it sorts ahead of beta.
	if len(m.queue) != 2 || m.queue[0] != "alpha" || m.queue[1] != "beta" {
		t.Fatalf("unexpected queue %v", m.queue)
	}

	m.grade(srs.Correct)
	if got := m.items["alpha"]; got.Level != 1 || got.Reviews != 1 {
		t.Fatalf("unexpected alpha state %+v", got)
	}

	// Missing beta resets it to level 0, due immediately, so it comes back.
	m.grade(srs.Incorrect)
	if len(m.queue) != 1 || m.queue[0] != "beta" {
		t.Fatalf("expected beta to return, got %v", m.queue)
	}
	if m.done {
		t.Fatalf("session should not be done with beta still due")
	}

	m.grade(srs.Correct)
	if !m.done {
		t.Fatalf("session should be done")
	}
	if m.reviewed != 3 || m.correct != 2 || m.incorrect != 1 {
		t.Fatalf("unexpected counts reviewed=%d correct=%d incorrect=%d", m.reviewed, m.correct, m.incorrect)
	}

	stored, err := st.Items(context.Background())
	if err != nil {
		t.Fatalf("load items: %v", err)
	}
	if stored["alpha"].Level != 1 || stored["beta"].Level != 1 {
		t.Fatalf("grades not persisted: %+v", stored)
	}
	if stored["beta"].Reviews != 4 {
		t.Fatalf("expected 4 reviews for beta, got %d", stored["beta"].Reviews)
	}
}

func TestQueueLimit(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	words := []string{"a", "b", "c", "d", "e"}
	m, _ := newTestModel(t, model.Config{Limit: 2}, words, nil, now)
	if len(m.queue) != 2 {
		t.Fatalf("expected queue capped at 2, got %d", len(m.queue))
	}
}

func TestUpdateGradesOnKeys(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	m, _ := newTestModel(t, model.Config{}, []string{"alpha"}, nil, now)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if cmd != nil {
		t.Fatalf("grading should not quit")
	}
	if m.reviewed != 1 || m.correct != 1 {
		t.Fatalf("expected one correct review, got reviewed=%d correct=%d", m.reviewed, m.correct)
	}
	if !m.done {
		t.Fatalf("session should be done after the only word")
	}

	// Any key on the summary screen quits.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd == nil {
		t.Fatalf("expected quit command from summary screen")
	}
}

func TestRenderFooterFormats(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	m, _ := newTestModel(t, model.Config{}, []string{"alpha", "beta"}, nil, now)
	m.grade(srs.Correct)

	out := m.renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	for _, want := range []string{"Left 1", "Reviewed 1", "100.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("footer missing %q: %s", want, out)
		}
	}
}

func TestViewSummary(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	m, _ := newTestModel(t, model.Config{}, []string{"alpha"}, nil, now)
	m.grade(srs.Incorrect)
	m.grade(srs.Correct)
	if !m.done {
		t.Fatalf("expected done session")
	}
	out := m.View()
	for _, want := range []string{"Session complete", "Reviewed: 2", "Knew: 1", "Missed: 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
