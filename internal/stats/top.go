// Package stats contains statistics calculations and reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/tuicard/internal/model"
)

// TopWordsByReviews returns the top N words by total review count.
func TopWordsByReviews(words []model.WordAggregate, n int) []string {
	if n <= 0 || len(words) == 0 {
		return nil
	}
	type item struct {
		word  string
		total int
	}
	items := make([]item, 0, len(words))
	for _, w := range words {
		items = append(items, item{
			word:  w.Word,
			total: w.Reviews,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].total == items[j].total {
			return items[i].word < items[j].word
		}
		return items[i].total > items[j].total
	})
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].word)
	}
	return out
}
