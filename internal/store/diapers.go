package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/puffin/internal/model"
)

const diaperCols = `id, timestamp, type, notes, created_at`

func (s *SQLiteStore) CreateDiaper(ctx context.Context, c model.DiaperCreate) (*model.DiaperChange, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	d := s.newDiaper(c, s.clock())
	if err := insertDiaper(ctx, s.db, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *SQLiteStore) newDiaper(c model.DiaperCreate, now time.Time) *model.DiaperChange {
	return &model.DiaperChange{
		ID:        s.newID(now),
		Timestamp: eventTime(c.Timestamp, now),
		Type:      c.Type,
		Notes:     c.Notes,
		CreatedAt: now,
	}
}

func insertDiaper(ctx context.Context, q execer, d *model.DiaperChange) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO diaper_changes (`+diaperCols+`) VALUES (?, ?, ?, ?, ?)`,
		d.ID, formatTime(d.Timestamp), d.Type, nullString(d.Notes), formatTime(d.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert diaper: %w", err)
	}
	return nil
}

// diaperExists reports whether a change with the same time and fields is stored.
func diaperExists(ctx context.Context, q querier, d *model.DiaperChange) (bool, error) {
	var found bool
	err := q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM diaper_changes WHERE timestamp = ? AND type = ? AND notes IS ?)`,
		formatTime(d.Timestamp), d.Type, nullString(d.Notes)).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("match diaper: %w", err)
	}
	return found, nil
}

func (s *SQLiteStore) GetDiaper(ctx context.Context, id string) (*model.DiaperChange, error) {
	return getDiaper(ctx, s.db, id)
}

func getDiaper(ctx context.Context, q querier, id string) (*model.DiaperChange, error) {
	row := q.QueryRowContext(ctx, `SELECT `+diaperCols+` FROM diaper_changes WHERE id = ?`, id)
	d, err := scanDiaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(model.KindDiaper, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get diaper: %w", err)
	}
	return &d, nil
}

func (s *SQLiteStore) UpdateDiaper(ctx context.Context, id string, u model.DiaperUpdate) (*model.DiaperChange, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	d, err := getDiaper(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	applyValue(&d.Timestamp, u.Timestamp)
	applyValue(&d.Type, u.Type)
	applyNullable(&d.Notes, u.Notes)
	d.Timestamp = normTime(d.Timestamp)

	_, err = tx.ExecContext(ctx,
		`UPDATE diaper_changes SET timestamp = ?, type = ?, notes = ? WHERE id = ?`,
		formatTime(d.Timestamp), d.Type, nullString(d.Notes), id)
	if err != nil {
		return nil, fmt.Errorf("update diaper: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *SQLiteStore) DeleteDiaper(ctx context.Context, id string) error {
	return s.Delete(ctx, model.KindDiaper, id)
}

func (s *SQLiteStore) ListDiapers(ctx context.Context, p ListParams) ([]model.DiaperChange, error) {
	query, args := listQuery("diaper_changes", diaperCols, p)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list diapers: %w", err)
	}
	defer rows.Close()

	var out []model.DiaperChange
	for rows.Next() {
		d, err := scanDiaper(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDiaper(row scanner) (model.DiaperChange, error) {
	var d model.DiaperChange
	var ts, created string
	var notes sql.NullString

	if err := row.Scan(&d.ID, &ts, &d.Type, &notes, &created); err != nil {
		return d, err
	}
	var err error
	d.Timestamp, d.CreatedAt, err = scanTimes(ts, created)
	if err != nil {
		return d, err
	}
	d.Notes = stringPtr(notes)
	return d, nil
}
