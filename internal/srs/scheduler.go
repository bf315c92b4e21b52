package srs

import (
	"math/rand"
	"sort"
	"time"
)

// ReviewLog records a single grading event.
type ReviewLog struct {
	Word       string
	Outcome    Outcome
	Level      int // level after the grade was applied
	ReviewedAt time.Time
}

// Scheduler decides which words are due and how grades move them on the
// ladder. It holds the random source used to shuffle the due queue; the
// clock is passed explicitly so callers and tests control time.
type Scheduler struct {
	rng *rand.Rand
}

// New returns a Scheduler seeded with the current time.
func New() *Scheduler {
	return &Scheduler{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewFromSource returns a Scheduler using the given random source.
func NewFromSource(src rand.Source) *Scheduler {
	return &Scheduler{rng: rand.New(src)}
}

// Grade applies one review outcome to an item and returns the next state
// along with a log entry for the event. The input item is not mutated.
//
// A correct answer climbs one level, capped at MaxLevel. An incorrect answer
// resets the word to level 0, except at MaxLevel, where it drops to level 1:
// a lapse on a mastered word is a slip, not a blank slate. The new due time
// always follows from the new level's interval. Levels outside the ladder
// (corrupted input state) are clamped before the transition.
func (s *Scheduler) Grade(item Item, outcome Outcome, now time.Time) (Item, ReviewLog) {
	level := clampLevel(item.Level)
	switch outcome {
	case Correct:
		if level < MaxLevel {
			level++
		}
	default:
		if level == MaxLevel {
			level = 1
		} else {
			level = 0
		}
	}

	next := Item{
		Word:    item.Word,
		Level:   level,
		Due:     now.Add(Interval(level)),
		Reviews: item.Reviews + 1,
	}
	log := ReviewLog{
		Word:       item.Word,
		Outcome:    outcome,
		Level:      level,
		ReviewedAt: now,
	}
	return next, log
}

// SelectDue returns the words due for review at the given time, least
// mastered first. Words without an entry in items count as level 0 and are
// always due. Words on the same level come back in random order so a session
// never replays the same sequence.
func (s *Scheduler) SelectDue(words []string, items map[string]Item, now time.Time) []string {
	var due []string
	for _, word := range words {
		item, ok := items[word]
		if !ok || item.IsDue(now) {
			due = append(due, word)
		}
	}
	if len(due) == 0 {
		return nil
	}

	s.rng.Shuffle(len(due), func(i, j int) {
		due[i], due[j] = due[j], due[i]
	})
	// Stable keeps the shuffled order within a level.
	sort.SliceStable(due, func(i, j int) bool {
		return clampLevel(items[due[i]].Level) < clampLevel(items[due[j]].Level)
	})
	return due
}
