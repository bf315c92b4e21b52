package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuicard/internal/model"
	"github.com/verte-zerg/tuicard/internal/srs"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "tuicard.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestAddAndListWords(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	added, err := st.AddWords(ctx, []string{"serendipity", "ephemeral"}, now)
	if err != nil {
		t.Fatalf("add words: %v", err)
	}
	if added != 2 {
		t.Fatalf("expected 2 added, got %d", added)
	}

	// Re-adding an existing word is a no-op.
	added, err = st.AddWords(ctx, []string{"ephemeral", "sonder"}, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("add words: %v", err)
	}
	if added != 1 {
		t.Fatalf("expected 1 added, got %d", added)
	}

	words, err := st.ListWords(ctx)
	if err != nil {
		t.Fatalf("list words: %v", err)
	}
	want := []string{"ephemeral", "serendipity", "sonder"}
	if len(words) != len(want) {
		t.Fatalf("got %v, want %v", words, want)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("got %v, want %v", words, want)
		}
	}
}

func TestApplyReviewAndItems(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	if _, err := st.AddWords(ctx, []string{"serendipity"}, now); err != nil {
		t.Fatalf("add words: %v", err)
	}

	item := srs.Item{Word: "serendipity", Level: 1, Due: now.Add(24 * time.Hour), Reviews: 1}
	log := srs.ReviewLog{Word: "serendipity", Outcome: srs.Correct, Level: 1, ReviewedAt: now}
	if err := st.ApplyReview(ctx, item, log); err != nil {
		t.Fatalf("apply review: %v", err)
	}

	items, err := st.Items(ctx)
	if err != nil {
		t.Fatalf("load items: %v", err)
	}
	got, ok := items["serendipity"]
	if !ok {
		t.Fatalf("expected item for serendipity, got %v", items)
	}
	if got.Level != 1 || got.Reviews != 1 {
		t.Fatalf("unexpected item %+v", got)
	}
	if !got.Due.Equal(item.Due) {
		t.Fatalf("due %v, want %v", got.Due, item.Due)
	}

	// A second review replaces the scheduling row instead of adding one.
	item2 := srs.Item{Word: "serendipity", Level: 2, Due: now.Add(4 * 24 * time.Hour), Reviews: 2}
	log2 := srs.ReviewLog{Word: "serendipity", Outcome: srs.Correct, Level: 2, ReviewedAt: now.Add(24 * time.Hour)}
	if err := st.ApplyReview(ctx, item2, log2); err != nil {
		t.Fatalf("apply review: %v", err)
	}
	items, err = st.Items(ctx)
	if err != nil {
		t.Fatalf("load items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
	if items["serendipity"].Level != 2 || items["serendipity"].Reviews != 2 {
		t.Fatalf("unexpected item %+v", items["serendipity"])
	}
}

func TestDueCount(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	if _, err := st.AddWords(ctx, []string{"a", "b", "c"}, now); err != nil {
		t.Fatalf("add words: %v", err)
	}
	// a reviewed and scheduled in the future, b reviewed and overdue, c never reviewed.
	if err := st.ApplyReview(ctx,
		srs.Item{Word: "a", Level: 2, Due: now.Add(3 * 24 * time.Hour), Reviews: 1},
		srs.ReviewLog{Word: "a", Outcome: srs.Correct, Level: 2, ReviewedAt: now},
	); err != nil {
		t.Fatalf("apply review: %v", err)
	}
	if err := st.ApplyReview(ctx,
		srs.Item{Word: "b", Level: 0, Due: now.Add(-time.Hour), Reviews: 1},
		srs.ReviewLog{Word: "b", Outcome: srs.Incorrect, Level: 0, ReviewedAt: now.Add(-time.Hour)},
	); err != nil {
		t.Fatalf("apply review: %v", err)
	}

	count, err := st.DueCount(ctx, now)
	if err != nil {
		t.Fatalf("due count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 due, got %d", count)
	}
}

func TestRemoveWords(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	if _, err := st.AddWords(ctx, []string{"a", "b"}, now); err != nil {
		t.Fatalf("add words: %v", err)
	}
	if err := st.ApplyReview(ctx,
		srs.Item{Word: "a", Level: 1, Due: now.Add(24 * time.Hour), Reviews: 1},
		srs.ReviewLog{Word: "a", Outcome: srs.Correct, Level: 1, ReviewedAt: now},
	); err != nil {
		t.Fatalf("apply review: %v", err)
	}

	removed, err := st.RemoveWords(ctx, []string{"a", "missing"})
	if err != nil {
		t.Fatalf("remove words: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}

	words, err := st.ListWords(ctx)
	if err != nil {
		t.Fatalf("list words: %v", err)
	}
	if len(words) != 1 || words[0] != "b" {
		t.Fatalf("unexpected words %v", words)
	}
	items, err := st.Items(ctx)
	if err != nil {
		t.Fatalf("load items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected scheduling state gone, got %v", items)
	}
	days, err := st.DailyReviews(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("daily reviews: %v", err)
	}
	if len(days) != 0 {
		t.Fatalf("expected history gone, got %v", days)
	}
}

func TestDailyReviews(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	day1 := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 11, 20, 30, 0, 0, time.UTC)

	if _, err := st.AddWords(ctx, []string{"a"}, day1); err != nil {
		t.Fatalf("add words: %v", err)
	}
	reviews := []struct {
		at time.Time
		o  srs.Outcome
	}{
		{day1, srs.Correct},
		{day1.Add(time.Minute), srs.Incorrect},
		{day2, srs.Correct},
		{day2.Add(time.Hour), srs.Correct},
	}
	for i, r := range reviews {
		item := srs.Item{Word: "a", Level: 1, Due: r.at.Add(24 * time.Hour), Reviews: i + 1}
		log := srs.ReviewLog{Word: "a", Outcome: r.o, Level: 1, ReviewedAt: r.at}
		if err := st.ApplyReview(ctx, item, log); err != nil {
			t.Fatalf("apply review: %v", err)
		}
	}

	days, err := st.DailyReviews(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("daily reviews: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %v", days)
	}
	if days[0].Correct != 1 || days[0].Incorrect != 1 {
		t.Fatalf("unexpected first day %+v", days[0])
	}
	if days[1].Correct != 2 || days[1].Incorrect != 0 {
		t.Fatalf("unexpected second day %+v", days[1])
	}

	since := day2.Add(-time.Hour)
	days, err = st.DailyReviews(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("daily reviews: %v", err)
	}
	if len(days) != 1 || !days[0].Day.Equal(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected filtered days %v", days)
	}
}

func TestWordAggregates(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	if _, err := st.AddWords(ctx, []string{"alpha", "beta"}, now); err != nil {
		t.Fatalf("add words: %v", err)
	}
	if err := st.ApplyReview(ctx,
		srs.Item{Word: "alpha", Level: 1, Due: now.Add(24 * time.Hour), Reviews: 1},
		srs.ReviewLog{Word: "alpha", Outcome: srs.Correct, Level: 1, ReviewedAt: now},
	); err != nil {
		t.Fatalf("apply review: %v", err)
	}
	if err := st.ApplyReview(ctx,
		srs.Item{Word: "alpha", Level: 0, Due: now.Add(time.Hour), Reviews: 2},
		srs.ReviewLog{Word: "alpha", Outcome: srs.Incorrect, Level: 0, ReviewedAt: now.Add(time.Hour)},
	); err != nil {
		t.Fatalf("apply review: %v", err)
	}

	aggs, err := st.WordAggregates(ctx)
	if err != nil {
		t.Fatalf("word aggregates: %v", err)
	}
	if len(aggs) != 2 {
		t.Fatalf("expected 2 aggregates, got %v", aggs)
	}
	alpha, beta := aggs[0], aggs[1]
	if alpha.Word != "alpha" || beta.Word != "beta" {
		t.Fatalf("unexpected order %v", aggs)
	}
	if alpha.Level != 0 || alpha.Reviews != 2 || alpha.Correct != 1 || alpha.Incorrect != 1 {
		t.Fatalf("unexpected alpha aggregate %+v", alpha)
	}
	if beta.Level != 0 || beta.Reviews != 0 || beta.Correct != 0 || beta.Incorrect != 0 {
		t.Fatalf("unexpected beta aggregate %+v", beta)
	}
	if !beta.Due.Equal(now) {
		t.Fatalf("unreviewed word should be due since it was added, got %v", beta.Due)
	}
}
