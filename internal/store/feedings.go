package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/puffin/internal/model"
)

const feedingCols = `id, timestamp, feeding_type, duration_minutes, amount_oz, notes, created_at`

func (s *SQLiteStore) CreateFeeding(ctx context.Context, c model.FeedingCreate) (*model.Feeding, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	f := s.newFeeding(c, s.clock())
	if err := insertFeeding(ctx, s.db, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *SQLiteStore) newFeeding(c model.FeedingCreate, now time.Time) *model.Feeding {
	return &model.Feeding{
		ID:              s.newID(now),
		Timestamp:       eventTime(c.Timestamp, now),
		FeedingType:     c.FeedingType,
		DurationMinutes: c.DurationMinutes,
		AmountOz:        c.AmountOz,
		Notes:           c.Notes,
		CreatedAt:       now,
	}
}

func insertFeeding(ctx context.Context, q execer, f *model.Feeding) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO feedings (`+feedingCols+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.ID, formatTime(f.Timestamp), f.FeedingType,
		nullInt(f.DurationMinutes), nullFloat(f.AmountOz), nullString(f.Notes),
		formatTime(f.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert feeding: %w", err)
	}
	return nil
}

func feedingExists(ctx context.Context, q querier, f *model.Feeding) (bool, error) {
	var found bool
	err := q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM feedings WHERE timestamp = ? AND feeding_type = ?
		   AND duration_minutes IS ? AND amount_oz IS ? AND notes IS ?)`,
		formatTime(f.Timestamp), f.FeedingType,
		nullInt(f.DurationMinutes), nullFloat(f.AmountOz), nullString(f.Notes)).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("match feeding: %w", err)
	}
	return found, nil
}

func (s *SQLiteStore) GetFeeding(ctx context.Context, id string) (*model.Feeding, error) {
	return getFeeding(ctx, s.db, id)
}

func getFeeding(ctx context.Context, q querier, id string) (*model.Feeding, error) {
	row := q.QueryRowContext(ctx, `SELECT `+feedingCols+` FROM feedings WHERE id = ?`, id)
	f, err := scanFeeding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(model.KindFeeding, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get feeding: %w", err)
	}
	return &f, nil
}

func (s *SQLiteStore) UpdateFeeding(ctx context.Context, id string, u model.FeedingUpdate) (*model.Feeding, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	f, err := getFeeding(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	applyValue(&f.Timestamp, u.Timestamp)
	applyValue(&f.FeedingType, u.FeedingType)
	applyNullable(&f.DurationMinutes, u.DurationMinutes)
	applyNullable(&f.AmountOz, u.AmountOz)
	applyNullable(&f.Notes, u.Notes)
	f.Timestamp = normTime(f.Timestamp)

	_, err = tx.ExecContext(ctx,
		`UPDATE feedings SET timestamp = ?, feeding_type = ?, duration_minutes = ?, amount_oz = ?, notes = ?
		 WHERE id = ?`,
		formatTime(f.Timestamp), f.FeedingType,
		nullInt(f.DurationMinutes), nullFloat(f.AmountOz), nullString(f.Notes), id)
	if err != nil {
		return nil, fmt.Errorf("update feeding: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *SQLiteStore) DeleteFeeding(ctx context.Context, id string) error {
	return s.Delete(ctx, model.KindFeeding, id)
}

func (s *SQLiteStore) ListFeedings(ctx context.Context, p ListParams) ([]model.Feeding, error) {
	query, args := listQuery("feedings", feedingCols, p)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list feedings: %w", err)
	}
	defer rows.Close()

	var out []model.Feeding
	for rows.Next() {
		f, err := scanFeeding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func scanFeeding(row scanner) (model.Feeding, error) {
	var f model.Feeding
	var ts, created string
	var duration sql.NullInt64
	var amount sql.NullFloat64
	var notes sql.NullString

	if err := row.Scan(&f.ID, &ts, &f.FeedingType, &duration, &amount, &notes, &created); err != nil {
		return f, err
	}
	var err error
	f.Timestamp, f.CreatedAt, err = scanTimes(ts, created)
	if err != nil {
		return f, err
	}
	if duration.Valid {
		v := int(duration.Int64)
		f.DurationMinutes = &v
	}
	if amount.Valid {
		v := amount.Float64
		f.AmountOz = &v
	}
	f.Notes = stringPtr(notes)
	return f, nil
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
