package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/puffin/internal/model"
)

const medicationCols = `id, timestamp, medication_name, dosage, notes, created_at`

func (s *SQLiteStore) CreateMedication(ctx context.Context, c model.MedicationCreate) (*model.Medication, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	m := s.newMedication(c, s.clock())
	if err := insertMedication(ctx, s.db, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *SQLiteStore) newMedication(c model.MedicationCreate, now time.Time) *model.Medication {
	return &model.Medication{
		ID:             s.newID(now),
		Timestamp:      eventTime(c.Timestamp, now),
		MedicationName: c.MedicationName,
		Dosage:         c.Dosage,
		Notes:          c.Notes,
		CreatedAt:      now,
	}
}

func insertMedication(ctx context.Context, q execer, m *model.Medication) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO medications (`+medicationCols+`) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, formatTime(m.Timestamp), m.MedicationName, m.Dosage, nullString(m.Notes),
		formatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert medication: %w", err)
	}
	return nil
}

func medicationExists(ctx context.Context, q querier, m *model.Medication) (bool, error) {
	var found bool
	err := q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM medications WHERE timestamp = ? AND medication_name = ?
		   AND dosage = ? AND notes IS ?)`,
		formatTime(m.Timestamp), m.MedicationName, m.Dosage, nullString(m.Notes)).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("match medication: %w", err)
	}
	return found, nil
}

func (s *SQLiteStore) GetMedication(ctx context.Context, id string) (*model.Medication, error) {
	return getMedication(ctx, s.db, id)
}

func getMedication(ctx context.Context, q querier, id string) (*model.Medication, error) {
	row := q.QueryRowContext(ctx, `SELECT `+medicationCols+` FROM medications WHERE id = ?`, id)
	m, err := scanMedication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(model.KindMedication, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get medication: %w", err)
	}
	return &m, nil
}

func (s *SQLiteStore) UpdateMedication(ctx context.Context, id string, u model.MedicationUpdate) (*model.Medication, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	m, err := getMedication(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	applyValue(&m.Timestamp, u.Timestamp)
	applyValue(&m.MedicationName, u.MedicationName)
	applyValue(&m.Dosage, u.Dosage)
	applyNullable(&m.Notes, u.Notes)
	m.Timestamp = normTime(m.Timestamp)

	_, err = tx.ExecContext(ctx,
		`UPDATE medications SET timestamp = ?, medication_name = ?, dosage = ?, notes = ? WHERE id = ?`,
		formatTime(m.Timestamp), m.MedicationName, m.Dosage, nullString(m.Notes), id)
	if err != nil {
		return nil, fmt.Errorf("update medication: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *SQLiteStore) DeleteMedication(ctx context.Context, id string) error {
	return s.Delete(ctx, model.KindMedication, id)
}

func (s *SQLiteStore) ListMedications(ctx context.Context, p ListParams) ([]model.Medication, error) {
	query, args := listQuery("medications", medicationCols, p)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list medications: %w", err)
	}
	defer rows.Close()

	var out []model.Medication
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMedication(row scanner) (model.Medication, error) {
	var m model.Medication
	var ts, created string
	var notes sql.NullString

	if err := row.Scan(&m.ID, &ts, &m.MedicationName, &m.Dosage, &notes, &created); err != nil {
		return m, err
	}
	var err error
	m.Timestamp, m.CreatedAt, err = scanTimes(ts, created)
	if err != nil {
		return m, err
	}
	m.Notes = stringPtr(notes)
	return m, nil
}
