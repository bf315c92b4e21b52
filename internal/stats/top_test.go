package stats

import (
	"testing"

	"github.com/verte-zerg/tuicard/internal/model"
)

func TestTopWordsByReviews(t *testing.T) {
	words := []model.WordAggregate{
		{Word: "beta", Reviews: 4},
		{Word: "alpha", Reviews: 4},
		{Word: "gamma", Reviews: 1},
	}
	top := TopWordsByReviews(words, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 words, got %d", len(top))
	}
	if top[0] != "alpha" || top[1] != "beta" {
		t.Fatalf("unexpected order: %v", top)
	}
}
