package store

import (
	"context"
	"fmt"
	"os"

	"github.com/rcliao/puffin/internal/model"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string      `json:"db_path"`
	DBSizeBytes int64       `json:"db_size_bytes"`
	Total       int         `json:"total_records"`
	Kinds       []KindStats `json:"kinds"`
}

// KindStats holds per-kind row counts and the span of event times.
type KindStats struct {
	Kind   model.Kind `json:"kind"`
	Count  int        `json:"count"`
	Oldest string     `json:"oldest,omitempty"`
	Newest string     `json:"newest,omitempty"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	for _, kind := range model.Kinds {
		table, err := tableFor(kind)
		if err != nil {
			return nil, err
		}
		ks := KindStats{Kind: kind}
		var oldest, newest *string
		err = s.db.QueryRowContext(ctx,
			`SELECT COUNT(*), MIN(timestamp), MAX(timestamp) FROM `+table).Scan(&ks.Count, &oldest, &newest)
		if err != nil {
			return nil, fmt.Errorf("stats %s: %w", kind, err)
		}
		if oldest != nil {
			ks.Oldest = *oldest
		}
		if newest != nil {
			ks.Newest = *newest
		}
		st.Total += ks.Count
		st.Kinds = append(st.Kinds, ks)
	}

	return st, nil
}
