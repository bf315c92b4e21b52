// Package model defines shared data structures.
package model

import "time"

// Config defines review session settings.
type Config struct {
	Limit int // max cards per session, 0 means no cap
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
}

// DayAggregate summarizes one day of reviews.
type DayAggregate struct {
	Day       time.Time
	Correct   int
	Incorrect int
}

// WordAggregate aggregates review history for one word.
type WordAggregate struct {
	Word      string
	Level     int
	Due       time.Time
	Reviews   int
	Correct   int
	Incorrect int
}
