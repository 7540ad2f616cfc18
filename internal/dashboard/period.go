package dashboard

import (
	"context"
	"time"

	"github.com/rcliao/puffin/internal/model"
)

// Window names a rolling period used for counting.
type Window string

const (
	Today Window = "today" // since local midnight
	Week  Window = "week"  // last 7×24h
	Month Window = "month" // last 30×24h, not a calendar month
)

// WindowStart returns the inclusive lower bound of w relative to now.
// "today" is midnight in now's location. Unrecognized windows start at now
// itself, so they only count records dated at or after now.
func WindowStart(w Window, now time.Time) time.Time {
	switch w {
	case Today:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case Week:
		return now.Add(-7 * 24 * time.Hour)
	case Month:
		return now.Add(-30 * 24 * time.Hour)
	default:
		return now
	}
}

// Count returns how many records of kind fall in window w. There is no upper
// bound, so future-dated records are counted.
func (c *Composer) Count(ctx context.Context, kind model.Kind, w Window) (int, error) {
	return c.store.Count(ctx, kind, WindowStart(w, c.now()))
}

// Stats returns today/week/month counts for kind. Each count reads the clock
// on its own; the three are not taken atomically.
func (c *Composer) Stats(ctx context.Context, kind model.Kind) (model.PeriodStats, error) {
	var st model.PeriodStats
	var err error
	if st.Today, err = c.Count(ctx, kind, Today); err != nil {
		return st, err
	}
	if st.Week, err = c.Count(ctx, kind, Week); err != nil {
		return st, err
	}
	if st.Month, err = c.Count(ctx, kind, Month); err != nil {
		return st, err
	}
	return st, nil
}
