package stats

import (
	"sort"

	"github.com/verte-zerg/tuicard/internal/model"
)

// SelectHardestWords returns the lowest-accuracy words, hardest first. Words
// never answered count as fine and sort last.
func SelectHardestWords(words []model.WordAggregate, top int) []string {
	if len(words) == 0 {
		return nil
	}
	candidates := make([]model.WordAggregate, len(words))
	copy(candidates, words)
	sort.Slice(candidates, func(i, j int) bool {
		ai := wordAccuracy(candidates[i])
		aj := wordAccuracy(candidates[j])
		if ai == aj {
			return candidates[i].Word < candidates[j].Word
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	out := make([]string, 0, top)
	for i := 0; i < top; i++ {
		out = append(out, candidates[i].Word)
	}
	return out
}
