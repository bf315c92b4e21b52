// Package srs implements the spaced-repetition scheduler for the word collection.
//
// Every word the learner tracks has an Item holding its position on a fixed
// six-level mastery ladder. Correct answers climb the ladder one level at a
// time; an incorrect answer resets the word to the bottom, except at the top
// level, where a single lapse drops it to level 1 instead. Each level maps to
// a fixed number of days until the next review.
package srs

import "time"

// MaxLevel is the top of the mastery ladder.
const MaxLevel = 5

// levelDays maps a mastery level to the number of days until the next review.
// The table is fixed; it is the entire scheduling algorithm.
var levelDays = [MaxLevel + 1]int{0, 1, 3, 7, 14, 30}

// Interval returns how long a word at the given level waits for its next
// review. Levels outside the ladder are clamped.
func Interval(level int) time.Duration {
	return time.Duration(levelDays[clampLevel(level)]) * 24 * time.Hour
}

// Item tracks the scheduling state of one word.
type Item struct {
	Word    string    // case-sensitive identifier
	Level   int       // 0 (unseen or reset) .. MaxLevel (mastered)
	Due     time.Time // instant at or after which the word is due
	Reviews int       // grading events ever applied; audit only
}

// NewItem creates a fresh item for a word: level 0, no reviews, due now.
func NewItem(word string, now time.Time) Item {
	return Item{Word: word, Due: now}
}

// IsDue reports whether the item should be reviewed at the given time.
func (it Item) IsDue(now time.Time) bool {
	return !it.Due.After(now)
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
