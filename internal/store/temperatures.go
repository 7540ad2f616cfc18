package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/puffin/internal/model"
)

const temperatureCols = `id, timestamp, temperature_celsius, location, notes, created_at`

func (s *SQLiteStore) CreateTemperature(ctx context.Context, c model.TemperatureCreate) (*model.TemperatureReading, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	t := s.newTemperature(c, s.clock())
	if err := insertTemperature(ctx, s.db, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *SQLiteStore) newTemperature(c model.TemperatureCreate, now time.Time) *model.TemperatureReading {
	return &model.TemperatureReading{
		ID:                 s.newID(now),
		Timestamp:          eventTime(c.Timestamp, now),
		TemperatureCelsius: c.TemperatureCelsius,
		Location:           c.Location,
		Notes:              c.Notes,
		CreatedAt:          now,
	}
}

func insertTemperature(ctx context.Context, q execer, t *model.TemperatureReading) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO temperature_readings (`+temperatureCols+`) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, formatTime(t.Timestamp), t.TemperatureCelsius,
		nullString(t.Location), nullString(t.Notes), formatTime(t.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert temperature: %w", err)
	}
	return nil
}

func temperatureExists(ctx context.Context, q querier, t *model.TemperatureReading) (bool, error) {
	var found bool
	err := q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM temperature_readings WHERE timestamp = ? AND temperature_celsius = ?
		   AND location IS ? AND notes IS ?)`,
		formatTime(t.Timestamp), t.TemperatureCelsius, nullString(t.Location), nullString(t.Notes)).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("match temperature: %w", err)
	}
	return found, nil
}

func (s *SQLiteStore) GetTemperature(ctx context.Context, id string) (*model.TemperatureReading, error) {
	return getTemperature(ctx, s.db, id)
}

func getTemperature(ctx context.Context, q querier, id string) (*model.TemperatureReading, error) {
	row := q.QueryRowContext(ctx, `SELECT `+temperatureCols+` FROM temperature_readings WHERE id = ?`, id)
	t, err := scanTemperature(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(model.KindTemperature, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get temperature: %w", err)
	}
	return &t, nil
}

func (s *SQLiteStore) UpdateTemperature(ctx context.Context, id string, u model.TemperatureUpdate) (*model.TemperatureReading, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t, err := getTemperature(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	applyValue(&t.Timestamp, u.Timestamp)
	applyValue(&t.TemperatureCelsius, u.TemperatureCelsius)
	applyNullable(&t.Location, u.Location)
	applyNullable(&t.Notes, u.Notes)
	t.Timestamp = normTime(t.Timestamp)

	_, err = tx.ExecContext(ctx,
		`UPDATE temperature_readings SET timestamp = ?, temperature_celsius = ?, location = ?, notes = ?
		 WHERE id = ?`,
		formatTime(t.Timestamp), t.TemperatureCelsius, nullString(t.Location), nullString(t.Notes), id)
	if err != nil {
		return nil, fmt.Errorf("update temperature: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *SQLiteStore) DeleteTemperature(ctx context.Context, id string) error {
	return s.Delete(ctx, model.KindTemperature, id)
}

func (s *SQLiteStore) ListTemperatures(ctx context.Context, p ListParams) ([]model.TemperatureReading, error) {
	query, args := listQuery("temperature_readings", temperatureCols, p)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list temperatures: %w", err)
	}
	defer rows.Close()

	var out []model.TemperatureReading
	for rows.Next() {
		t, err := scanTemperature(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTemperature(row scanner) (model.TemperatureReading, error) {
	var t model.TemperatureReading
	var ts, created string
	var location, notes sql.NullString

	if err := row.Scan(&t.ID, &ts, &t.TemperatureCelsius, &location, &notes, &created); err != nil {
		return t, err
	}
	var err error
	t.Timestamp, t.CreatedAt, err = scanTimes(ts, created)
	if err != nil {
		return t, err
	}
	t.Location = stringPtr(location)
	t.Notes = stringPtr(notes)
	return t, nil
}
