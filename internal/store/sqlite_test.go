package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rcliao/puffin/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func ptr[T any](v T) *T { return &v }

func TestCreateAndGetDiaper(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	d, err := s.CreateDiaper(ctx, model.DiaperCreate{Type: "pee", Notes: ptr("Very wet")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if d.ID == "" {
		t.Error("expected non-empty ID")
	}
	if d.Timestamp.IsZero() || d.CreatedAt.IsZero() {
		t.Error("expected timestamp and created_at to be set")
	}

	got, err := s.GetDiaper(ctx, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Type != "pee" {
		t.Errorf("expected type pee, got %q", got.Type)
	}
	if got.Notes == nil || *got.Notes != "Very wet" {
		t.Errorf("expected notes 'Very wet', got %v", got.Notes)
	}
	if !got.Timestamp.Equal(d.Timestamp) {
		t.Errorf("timestamp round trip: got %v, want %v", got.Timestamp, d.Timestamp)
	}
	if !got.CreatedAt.Equal(d.CreatedAt) {
		t.Errorf("created_at round trip: got %v, want %v", got.CreatedAt, d.CreatedAt)
	}
}

func TestCreateDefaultsTimestampToNow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	d, err := s.CreateDiaper(ctx, model.DiaperCreate{Type: "poop"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !d.Timestamp.Equal(fixed) {
		t.Errorf("expected timestamp %v, got %v", fixed, d.Timestamp)
	}
	if !d.CreatedAt.Equal(fixed) {
		t.Errorf("expected created_at %v, got %v", fixed, d.CreatedAt)
	}
}

func TestCreateKeepsFutureTimestamp(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	future := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Microsecond)
	f, err := s.CreateFeeding(ctx, model.FeedingCreate{Timestamp: &future, FeedingType: "bottle"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !f.Timestamp.Equal(future) {
		t.Errorf("expected timestamp %v, got %v", future, f.Timestamp)
	}
	if !f.Timestamp.After(f.CreatedAt) {
		t.Error("expected event timestamp after created_at")
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tests := []struct {
		name string
		fn   func() error
	}{
		{"diaper type", func() error {
			_, err := s.CreateDiaper(ctx, model.DiaperCreate{Type: "invalid"})
			return err
		}},
		{"feeding type", func() error {
			_, err := s.CreateFeeding(ctx, model.FeedingCreate{FeedingType: "cup"})
			return err
		}},
		{"medication name", func() error {
			_, err := s.CreateMedication(ctx, model.MedicationCreate{Dosage: "1 drop"})
			return err
		}},
		{"temperature location", func() error {
			_, err := s.CreateTemperature(ctx, model.TemperatureCreate{TemperatureCelsius: 37, Location: ptr("ear")})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ve *model.ValidationError
			if err := tt.fn(); !errors.As(err, &ve) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestGetNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.GetDiaper(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("diaper: expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetFeeding(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("feeding: expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetMedication(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("medication: expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetTemperature(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("temperature: expected ErrNotFound, got %v", err)
	}
}

func TestListOrderAndRange(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		ts := base.Add(time.Duration(i) * time.Hour)
		if _, err := s.CreateDiaper(ctx, model.DiaperCreate{Timestamp: &ts, Type: "pee"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := s.ListDiapers(ctx, ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if !all[i-1].Timestamp.After(all[i].Timestamp) {
			t.Errorf("not newest first at %d: %v then %v", i, all[i-1].Timestamp, all[i].Timestamp)
		}
	}

	// Bounds are inclusive
	start := base.Add(1 * time.Hour)
	end := base.Add(3 * time.Hour)
	ranged, _ := s.ListDiapers(ctx, ListParams{Start: &start, End: &end})
	if len(ranged) != 3 {
		t.Errorf("expected 3 in range, got %d", len(ranged))
	}

	page, _ := s.ListDiapers(ctx, ListParams{Limit: 2, Offset: 1})
	if len(page) != 2 {
		t.Fatalf("expected 2 in page, got %d", len(page))
	}
	if !page[0].Timestamp.Equal(base.Add(3 * time.Hour)) {
		t.Errorf("expected page to start at hour 3, got %v", page[0].Timestamp)
	}
}

func TestListDefaultLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 0; i < DefaultLimit+5; i++ {
		if _, err := s.CreateMedication(ctx, model.MedicationCreate{MedicationName: "Vitamin D", Dosage: "1 drop"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	meds, _ := s.ListMedications(ctx, ListParams{})
	if len(meds) != DefaultLimit {
		t.Errorf("expected %d, got %d", DefaultLimit, len(meds))
	}
}

func TestUpdateDiaperPartial(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	d, _ := s.CreateDiaper(ctx, model.DiaperCreate{Type: "pee", Notes: ptr("first")})

	got, err := s.UpdateDiaper(ctx, d.ID, model.DiaperUpdate{Type: model.Some("both")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Type != "both" {
		t.Errorf("expected type both, got %q", got.Type)
	}
	if got.Notes == nil || *got.Notes != "first" {
		t.Errorf("absent notes should be unchanged, got %v", got.Notes)
	}
	if !got.Timestamp.Equal(d.Timestamp) || !got.CreatedAt.Equal(d.CreatedAt) {
		t.Error("absent timestamp should be unchanged")
	}

	cleared, err := s.UpdateDiaper(ctx, d.ID, model.DiaperUpdate{Notes: model.Null[string]()})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cleared.Notes != nil {
		t.Errorf("expected notes cleared, got %q", *cleared.Notes)
	}

	stored, _ := s.GetDiaper(ctx, d.ID)
	if stored.Type != "both" || stored.Notes != nil {
		t.Errorf("update not persisted: %+v", stored)
	}
}

func TestUpdateFeedingNullableFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	f, _ := s.CreateFeeding(ctx, model.FeedingCreate{FeedingType: "bottle", AmountOz: ptr(3.5), DurationMinutes: ptr(15)})

	got, err := s.UpdateFeeding(ctx, f.ID, model.FeedingUpdate{
		AmountOz:    model.Null[float64](),
		FeedingType: model.Some("breast_left"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.AmountOz != nil {
		t.Errorf("expected amount cleared, got %v", *got.AmountOz)
	}
	if got.DurationMinutes == nil || *got.DurationMinutes != 15 {
		t.Errorf("expected duration 15 unchanged, got %v", got.DurationMinutes)
	}

	stored, _ := s.GetFeeding(ctx, f.ID)
	if stored.AmountOz != nil || stored.FeedingType != "breast_left" {
		t.Errorf("update not persisted: %+v", stored)
	}
}

func TestUpdateRejectsNullRequiredField(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	m, _ := s.CreateMedication(ctx, model.MedicationCreate{MedicationName: "Tylenol", Dosage: "2.5 ml"})
	_, err := s.UpdateMedication(ctx, m.ID, model.MedicationUpdate{Dosage: model.Null[string]()})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	stored, _ := s.GetMedication(ctx, m.ID)
	if stored.Dosage != "2.5 ml" {
		t.Errorf("expected dosage unchanged, got %q", stored.Dosage)
	}
}

func TestUpdateNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.UpdateTemperature(ctx, "missing", model.TemperatureUpdate{TemperatureCelsius: model.Some(37.0)})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotentNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tr, _ := s.CreateTemperature(ctx, model.TemperatureCreate{TemperatureCelsius: 37.2, Location: ptr("axillary")})

	if err := s.DeleteTemperature(ctx, tr.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.DeleteTemperature(ctx, tr.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("delete #%d: expected ErrNotFound, got %v", i+2, err)
		}
	}
	if err := s.Delete(ctx, model.KindDiaper, "never-existed"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetTemperature(ctx, tr.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected deleted record to be gone, got %v", err)
	}
}

func TestIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		d, err := s.CreateDiaper(ctx, model.DiaperCreate{Type: "pee"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[d.ID] {
			t.Fatalf("duplicate id %s", d.ID)
		}
		seen[d.ID] = true
	}
}

func TestCount(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	since := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, ts := range []time.Time{
		since.Add(-time.Second),
		since,
		since.Add(time.Hour),
		since.Add(30 * 24 * time.Hour), // far future still counts
	} {
		ts := ts
		if _, err := s.CreateFeeding(ctx, model.FeedingCreate{Timestamp: &ts, FeedingType: "bottle"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	n, err := s.Count(ctx, model.KindFeeding, since)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3, got %d", n)
	}

	n, _ = s.Count(ctx, model.KindDiaper, since)
	if n != 0 {
		t.Errorf("expected 0 diapers, got %d", n)
	}

	if _, err := s.Count(ctx, model.Kind("nap"), since); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestTimestampsInOtherZonesCompareCorrectly(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tokyo := time.FixedZone("JST", 9*3600)
	// 08:00 JST is 23:00 UTC the previous day.
	ts := time.Date(2026, 6, 2, 8, 0, 0, 0, tokyo)
	if _, err := s.CreateDiaper(ctx, model.DiaperCreate{Timestamp: &ts, Type: "pee"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	n, _ := s.Count(ctx, model.KindDiaper, time.Date(2026, 6, 1, 22, 59, 0, 0, time.UTC))
	if n != 1 {
		t.Errorf("expected 1, got %d", n)
	}
	n, _ = s.Count(ctx, model.KindDiaper, time.Date(2026, 6, 1, 23, 0, 1, 0, time.UTC))
	if n != 0 {
		t.Errorf("expected 0, got %d", n)
	}
}
