// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"time"

	"github.com/verte-zerg/tuicard/internal/model"
	"github.com/verte-zerg/tuicard/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Days   []model.DayAggregate
	Words  []model.WordAggregate
	DueNow int
	Now    time.Time
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig, now time.Time) (Report, error) {
	days, err := st.DailyReviews(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(days) > cfg.Last {
		days = days[len(days)-cfg.Last:]
	}

	words, err := st.WordAggregates(ctx)
	if err != nil {
		return Report{}, err
	}
	dueNow, err := st.DueCount(ctx, now)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Days:   days,
		Words:  words,
		DueNow: dueNow,
		Now:    now,
	}, nil
}
