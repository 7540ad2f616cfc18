// Package store provides the care-log record store interface and SQLite implementation.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/puffin/internal/model"
)

// ErrNotFound is returned when a requested id does not exist.
var ErrNotFound = errors.New("not found")

func notFound(kind model.Kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

// DefaultLimit is used when ListParams.Limit is not positive.
const DefaultLimit = 50

// ListParams holds parameters for a range listing. Results are ordered by
// timestamp, newest first. Nil bounds are open.
type ListParams struct {
	Start  *time.Time
	End    *time.Time
	Limit  int
	Offset int
}

// Store defines the record storage interface. One collection per kind.
type Store interface {
	CreateDiaper(ctx context.Context, c model.DiaperCreate) (*model.DiaperChange, error)
	GetDiaper(ctx context.Context, id string) (*model.DiaperChange, error)
	UpdateDiaper(ctx context.Context, id string, u model.DiaperUpdate) (*model.DiaperChange, error)
	DeleteDiaper(ctx context.Context, id string) error
	ListDiapers(ctx context.Context, p ListParams) ([]model.DiaperChange, error)

	CreateFeeding(ctx context.Context, c model.FeedingCreate) (*model.Feeding, error)
	GetFeeding(ctx context.Context, id string) (*model.Feeding, error)
	UpdateFeeding(ctx context.Context, id string, u model.FeedingUpdate) (*model.Feeding, error)
	DeleteFeeding(ctx context.Context, id string) error
	ListFeedings(ctx context.Context, p ListParams) ([]model.Feeding, error)

	CreateMedication(ctx context.Context, c model.MedicationCreate) (*model.Medication, error)
	GetMedication(ctx context.Context, id string) (*model.Medication, error)
	UpdateMedication(ctx context.Context, id string, u model.MedicationUpdate) (*model.Medication, error)
	DeleteMedication(ctx context.Context, id string) error
	ListMedications(ctx context.Context, p ListParams) ([]model.Medication, error)

	CreateTemperature(ctx context.Context, c model.TemperatureCreate) (*model.TemperatureReading, error)
	GetTemperature(ctx context.Context, id string) (*model.TemperatureReading, error)
	UpdateTemperature(ctx context.Context, id string, u model.TemperatureUpdate) (*model.TemperatureReading, error)
	DeleteTemperature(ctx context.Context, id string) error
	ListTemperatures(ctx context.Context, p ListParams) ([]model.TemperatureReading, error)

	// Count returns the number of records of kind with timestamp >= since.
	Count(ctx context.Context, kind model.Kind, since time.Time) (int, error)

	// Delete removes a record of any kind by id.
	Delete(ctx context.Context, kind model.Kind, id string) error

	ExportAll(ctx context.Context) (*model.Export, error)
	Import(ctx context.Context, e *model.Export) (int, error)

	// Close closes the store.
	Close() error
}
