package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/puffin/internal/model"
)

// timeLayout is fixed-width so that TEXT comparison in SQL matches time order.
const timeLayout = "2006-01-02T15:04:05.000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex
	entropy io.Reader

	now func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		now:     time.Now,
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID(t time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS diaper_changes (
		id          TEXT PRIMARY KEY,
		timestamp   TEXT NOT NULL,
		type        TEXT NOT NULL,
		notes       TEXT,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_diaper_timestamp ON diaper_changes(timestamp DESC);

	CREATE TABLE IF NOT EXISTS feedings (
		id               TEXT PRIMARY KEY,
		timestamp        TEXT NOT NULL,
		feeding_type     TEXT NOT NULL,
		duration_minutes INTEGER,
		amount_oz        REAL,
		notes            TEXT,
		created_at       TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_feeding_timestamp ON feedings(timestamp DESC);

	CREATE TABLE IF NOT EXISTS medications (
		id              TEXT PRIMARY KEY,
		timestamp       TEXT NOT NULL,
		medication_name TEXT NOT NULL,
		dosage          TEXT NOT NULL,
		notes           TEXT,
		created_at      TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_medication_timestamp ON medications(timestamp DESC);

	CREATE TABLE IF NOT EXISTS temperature_readings (
		id                  TEXT PRIMARY KEY,
		timestamp           TEXT NOT NULL,
		temperature_celsius REAL NOT NULL,
		location            TEXT,
		notes               TEXT,
		created_at          TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_temperature_timestamp ON temperature_readings(timestamp DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func tableFor(kind model.Kind) (string, error) {
	switch kind {
	case model.KindDiaper:
		return "diaper_changes", nil
	case model.KindFeeding:
		return "feedings", nil
	case model.KindMedication:
		return "medications", nil
	case model.KindTemperature:
		return "temperature_readings", nil
	}
	return "", fmt.Errorf("unknown kind %q", kind)
}

// eventTime resolves the caller-supplied event time, defaulting to now.
// Times are kept at the microsecond precision the columns store.
func eventTime(ts *time.Time, now time.Time) time.Time {
	if ts == nil || ts.IsZero() {
		return now
	}
	return normTime(*ts)
}

func normTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func (s *SQLiteStore) clock() time.Time {
	return normTime(s.now())
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type execer interface {
	querier
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Count returns the number of records of kind with timestamp >= since.
// No upper bound is applied, so future-dated records are included.
func (s *SQLiteStore) Count(ctx context.Context, kind model.Kind, since time.Time) (int, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	var n int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+table+` WHERE timestamp >= ?`, formatTime(since)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return n, nil
}

// Delete removes a record by id. Deleting an absent id reports ErrNotFound,
// every time.
func (s *SQLiteStore) Delete(ctx context.Context, kind model.Kind, id string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if n == 0 {
		return notFound(kind, id)
	}
	return nil
}

// listQuery builds a range query over table selecting cols.
func listQuery(table, cols string, p ListParams) (string, []interface{}) {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}

	var where []string
	var args []interface{}
	if p.Start != nil {
		where = append(where, "timestamp >= ?")
		args = append(args, formatTime(*p.Start))
	}
	if p.End != nil {
		where = append(where, "timestamp <= ?")
		args = append(args, formatTime(*p.End))
	}

	query := `SELECT ` + cols + ` FROM ` + table
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY timestamp DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)
	return query, args
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

// scanTimes parses the timestamp and created_at columns shared by every table.
func scanTimes(ts, created string) (time.Time, time.Time, error) {
	t, err := parseTime(ts)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse timestamp %q: %w", ts, err)
	}
	c, err := parseTime(created)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	return t, c, nil
}

// applyValue applies a patch to a required field. Callers reject null
// beforehand, so a null here is ignored.
func applyValue[T any](dst *T, o model.Optional[T]) {
	if o.Set && !o.Null {
		*dst = o.Value
	}
}

// applyNullable applies a patch to a nullable field. Null clears it.
func applyNullable[T any](dst **T, o model.Optional[T]) {
	if !o.Set {
		return
	}
	*dst = o.Ptr()
}
