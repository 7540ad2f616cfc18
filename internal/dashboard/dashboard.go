// Package dashboard computes rolling period counts and composes the dashboard
// summary: per-kind stats, the latest record of each kind, and a merged feed
// of recent activity across all kinds.
package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/rcliao/puffin/internal/model"
	"github.com/rcliao/puffin/internal/store"
)

const (
	// RecentWindow is how far back the dashboard feed reaches.
	RecentWindow = 3 * 24 * time.Hour

	// FeedLimit caps how many records of each kind enter a feed. Older records
	// past the cap are silently left out.
	FeedLimit = 200
)

// Store is the subset of the record store the dashboard reads.
type Store interface {
	Count(ctx context.Context, kind model.Kind, since time.Time) (int, error)
	ListDiapers(ctx context.Context, p store.ListParams) ([]model.DiaperChange, error)
	ListFeedings(ctx context.Context, p store.ListParams) ([]model.Feeding, error)
	ListMedications(ctx context.Context, p store.ListParams) ([]model.Medication, error)
	ListTemperatures(ctx context.Context, p store.ListParams) ([]model.TemperatureReading, error)
}

// Composer builds dashboard summaries from a record store.
type Composer struct {
	store Store
	now   func() time.Time
}

// New returns a Composer reading from s. Day boundaries ("today") are taken in
// loc; a nil loc means the process's local time zone.
func New(s Store, loc *time.Location) *Composer {
	if loc == nil {
		loc = time.Local
	}
	return &Composer{
		store: s,
		now:   func() time.Time { return time.Now().In(loc) },
	}
}

// Compose returns the dashboard summary. Reads are not taken in a single
// transaction. The first store error is returned as is and no partial
// summary is produced.
func (c *Composer) Compose(ctx context.Context) (*model.DashboardSummary, error) {
	var sum model.DashboardSummary
	var err error

	if sum.DiaperStats, err = c.Stats(ctx, model.KindDiaper); err != nil {
		return nil, err
	}
	if sum.FeedingStats, err = c.Stats(ctx, model.KindFeeding); err != nil {
		return nil, err
	}
	if sum.MedicationCountToday, err = c.Count(ctx, model.KindMedication, Today); err != nil {
		return nil, err
	}

	latest := store.ListParams{Limit: 1}
	diapers, err := c.store.ListDiapers(ctx, latest)
	if err != nil {
		return nil, err
	}
	if len(diapers) > 0 {
		sum.LastDiaper = &diapers[0]
	}
	feedings, err := c.store.ListFeedings(ctx, latest)
	if err != nil {
		return nil, err
	}
	if len(feedings) > 0 {
		sum.LastFeeding = &feedings[0]
	}
	temps, err := c.store.ListTemperatures(ctx, latest)
	if err != nil {
		return nil, err
	}
	if len(temps) > 0 {
		sum.LastTemperature = &temps[0]
	}

	now := c.now()
	if sum.RecentActivities, err = c.Activities(ctx, now.Add(-RecentWindow), now); err != nil {
		return nil, err
	}

	return &sum, nil
}

// Activities returns every record with a timestamp in [start, end], normalized
// and ordered newest first. At most FeedLimit records of each kind are read.
// Equal timestamps keep the order diaper, feeding, medication, temperature.
func (c *Composer) Activities(ctx context.Context, start, end time.Time) ([]model.Activity, error) {
	p := store.ListParams{Start: &start, End: &end, Limit: FeedLimit}
	activities := []model.Activity{}

	diapers, err := c.store.ListDiapers(ctx, p)
	if err != nil {
		return nil, err
	}
	for _, d := range diapers {
		activities = append(activities, NormalizeDiaper(d))
	}

	feedings, err := c.store.ListFeedings(ctx, p)
	if err != nil {
		return nil, err
	}
	for _, f := range feedings {
		activities = append(activities, NormalizeFeeding(f))
	}

	meds, err := c.store.ListMedications(ctx, p)
	if err != nil {
		return nil, err
	}
	for _, m := range meds {
		activities = append(activities, NormalizeMedication(m))
	}

	temps, err := c.store.ListTemperatures(ctx, p)
	if err != nil {
		return nil, err
	}
	for _, t := range temps {
		activities = append(activities, NormalizeTemperature(t))
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	return activities, nil
}
