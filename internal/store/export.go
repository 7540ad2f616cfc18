package store

import (
	"context"
	"fmt"
	"math"

	"github.com/rcliao/puffin/internal/model"
)

// exportLimit is effectively unlimited.
const exportLimit = math.MaxInt32

// ExportAll returns every record of every kind, newest first within each kind.
func (s *SQLiteStore) ExportAll(ctx context.Context) (*model.Export, error) {
	all := ListParams{Limit: exportLimit}
	e := &model.Export{}
	var err error

	if e.Diapers, err = s.ListDiapers(ctx, all); err != nil {
		return nil, err
	}
	if e.Feedings, err = s.ListFeedings(ctx, all); err != nil {
		return nil, err
	}
	if e.Medications, err = s.ListMedications(ctx, all); err != nil {
		return nil, err
	}
	if e.Temperatures, err = s.ListTemperatures(ctx, all); err != nil {
		return nil, err
	}
	return e, nil
}

// Import re-creates the records of an export in a single transaction: on any
// error nothing is stored. Records get fresh ids and insertion times but keep
// their event timestamps. A record matching a stored one of the same kind on
// timestamp and every field is skipped, so importing a file twice is a no-op.
// Import returns the number of records stored.
func (s *SQLiteStore) Import(ctx context.Context, e *model.Export) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	now := s.clock()
	imported := 0

	for _, d := range e.Diapers {
		ts := d.Timestamp
		c := model.DiaperCreate{Timestamp: &ts, Type: d.Type, Notes: d.Notes}
		if err := c.Validate(); err != nil {
			return 0, fmt.Errorf("import diaper %s: %w", d.ID, err)
		}
		rec := s.newDiaper(c, now)
		dup, err := diaperExists(ctx, tx, rec)
		if err != nil {
			return 0, err
		}
		if dup {
			continue
		}
		if err := insertDiaper(ctx, tx, rec); err != nil {
			return 0, err
		}
		imported++
	}

	for _, f := range e.Feedings {
		ts := f.Timestamp
		c := model.FeedingCreate{
			Timestamp:       &ts,
			FeedingType:     f.FeedingType,
			DurationMinutes: f.DurationMinutes,
			AmountOz:        f.AmountOz,
			Notes:           f.Notes,
		}
		if err := c.Validate(); err != nil {
			return 0, fmt.Errorf("import feeding %s: %w", f.ID, err)
		}
		rec := s.newFeeding(c, now)
		dup, err := feedingExists(ctx, tx, rec)
		if err != nil {
			return 0, err
		}
		if dup {
			continue
		}
		if err := insertFeeding(ctx, tx, rec); err != nil {
			return 0, err
		}
		imported++
	}

	for _, m := range e.Medications {
		ts := m.Timestamp
		c := model.MedicationCreate{
			Timestamp:      &ts,
			MedicationName: m.MedicationName,
			Dosage:         m.Dosage,
			Notes:          m.Notes,
		}
		if err := c.Validate(); err != nil {
			return 0, fmt.Errorf("import medication %s: %w", m.ID, err)
		}
		rec := s.newMedication(c, now)
		dup, err := medicationExists(ctx, tx, rec)
		if err != nil {
			return 0, err
		}
		if dup {
			continue
		}
		if err := insertMedication(ctx, tx, rec); err != nil {
			return 0, err
		}
		imported++
	}

	for _, t := range e.Temperatures {
		ts := t.Timestamp
		c := model.TemperatureCreate{
			Timestamp:          &ts,
			TemperatureCelsius: t.TemperatureCelsius,
			Location:           t.Location,
			Notes:              t.Notes,
		}
		if err := c.Validate(); err != nil {
			return 0, fmt.Errorf("import temperature %s: %w", t.ID, err)
		}
		rec := s.newTemperature(c, now)
		dup, err := temperatureExists(ctx, tx, rec)
		if err != nil {
			return 0, err
		}
		if dup {
			continue
		}
		if err := insertTemperature(ctx, tx, rec); err != nil {
			return 0, err
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return imported, nil
}
