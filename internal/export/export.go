// Package export renders a full dump of the care log as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rcliao/puffin/internal/model"
)

// Format is an export encoding.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// ParseFormat validates an export format name. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	}
	return "", &model.ValidationError{Field: "format", Message: fmt.Sprintf("%q is not one of csv, json", s)}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == JSON {
		return "application/json"
	}
	return "text/csv"
}

// Filename returns the download filename for f.
func (f Format) Filename() string {
	return "puffin_export." + string(f)
}

// Write renders e to w in format f.
func Write(w io.Writer, f Format, e *model.Export) error {
	if f == JSON {
		return WriteJSON(w, e)
	}
	return WriteCSV(w, e)
}

// WriteJSON writes e as an indented JSON object keyed by collection.
// Empty collections are written as [] rather than null.
func WriteJSON(w io.Writer, e *model.Export) error {
	out := model.Export{
		Diapers:      nonNil(e.Diapers),
		Feedings:     nonNil(e.Feedings),
		Medications:  nonNil(e.Medications),
		Temperatures: nonNil(e.Temperatures),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// WriteCSV writes e as four CSV sections, each introduced by a banner row and
// a header row, separated by blank rows.
func WriteCSV(w io.Writer, e *model.Export) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	rows := [][]string{
		{"--- Diaper Changes ---"},
		{"id", "timestamp", "type", "notes", "created_at"},
	}
	for _, d := range e.Diapers {
		rows = append(rows, []string{d.ID, ts(d.Timestamp), d.Type, str(d.Notes), ts(d.CreatedAt)})
	}

	rows = append(rows, []string{},
		[]string{"--- Feedings ---"},
		[]string{"id", "timestamp", "feeding_type", "duration_minutes", "amount_oz", "notes", "created_at"})
	for _, f := range e.Feedings {
		rows = append(rows, []string{
			f.ID, ts(f.Timestamp), f.FeedingType,
			integer(f.DurationMinutes), decimal(f.AmountOz), str(f.Notes), ts(f.CreatedAt),
		})
	}

	rows = append(rows, []string{},
		[]string{"--- Medications ---"},
		[]string{"id", "timestamp", "medication_name", "dosage", "notes", "created_at"})
	for _, m := range e.Medications {
		rows = append(rows, []string{m.ID, ts(m.Timestamp), m.MedicationName, m.Dosage, str(m.Notes), ts(m.CreatedAt)})
	}

	rows = append(rows, []string{},
		[]string{"--- Temperature Readings ---"},
		[]string{"id", "timestamp", "temperature_celsius", "location", "notes", "created_at"})
	for _, t := range e.Temperatures {
		c := t.TemperatureCelsius
		rows = append(rows, []string{
			t.ID, ts(t.Timestamp), decimal(&c), str(t.Location), str(t.Notes), ts(t.CreatedAt),
		})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func ts(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func integer(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func decimal(p *float64) string {
	if p == nil {
		return ""
	}
	return model.FormatDecimal(*p)
}
