package model

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError reports malformed or out-of-enum input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func enumError(field, got string, order []string) error {
	return invalid(field, "%q is not one of %s", got, strings.Join(order, ", "))
}

var (
	diaperTypeOrder  = []string{"pee", "poop", "both"}
	feedingTypeOrder = []string{"breast_left", "breast_right", "breast_both", "bottle"}
	locationOrder    = []string{"rectal", "oral", "axillary", "temporal"}
)

// DiaperCreate holds the fields for a new diaper change.
// A nil Timestamp defaults to the time of insertion.
type DiaperCreate struct {
	Timestamp *time.Time `json:"timestamp"`
	Type      string     `json:"type"`
	Notes     *string    `json:"notes"`
}

func (c DiaperCreate) Validate() error {
	if !ValidDiaperTypes[c.Type] {
		return enumError("type", c.Type, diaperTypeOrder)
	}
	return nil
}

// DiaperUpdate is a partial update; absent fields are left unchanged.
type DiaperUpdate struct {
	Timestamp Optional[time.Time] `json:"timestamp"`
	Type      Optional[string]    `json:"type"`
	Notes     Optional[string]    `json:"notes"`
}

func (u DiaperUpdate) Validate() error {
	if u.Timestamp.Set && u.Timestamp.Null {
		return invalid("timestamp", "cannot be null")
	}
	if u.Type.Set {
		if u.Type.Null {
			return invalid("type", "cannot be null")
		}
		if !ValidDiaperTypes[u.Type.Value] {
			return enumError("type", u.Type.Value, diaperTypeOrder)
		}
	}
	return nil
}

// FeedingCreate holds the fields for a new feeding.
type FeedingCreate struct {
	Timestamp       *time.Time `json:"timestamp"`
	FeedingType     string     `json:"feeding_type"`
	DurationMinutes *int       `json:"duration_minutes"`
	AmountOz        *float64   `json:"amount_oz"`
	Notes           *string    `json:"notes"`
}

func (c FeedingCreate) Validate() error {
	if !ValidFeedingTypes[c.FeedingType] {
		return enumError("feeding_type", c.FeedingType, feedingTypeOrder)
	}
	if c.DurationMinutes != nil && *c.DurationMinutes < 0 {
		return invalid("duration_minutes", "must not be negative")
	}
	if c.AmountOz != nil && *c.AmountOz < 0 {
		return invalid("amount_oz", "must not be negative")
	}
	return nil
}

// FeedingUpdate is a partial update; absent fields are left unchanged.
type FeedingUpdate struct {
	Timestamp       Optional[time.Time] `json:"timestamp"`
	FeedingType     Optional[string]    `json:"feeding_type"`
	DurationMinutes Optional[int]       `json:"duration_minutes"`
	AmountOz        Optional[float64]   `json:"amount_oz"`
	Notes           Optional[string]    `json:"notes"`
}

func (u FeedingUpdate) Validate() error {
	if u.Timestamp.Set && u.Timestamp.Null {
		return invalid("timestamp", "cannot be null")
	}
	if u.FeedingType.Set {
		if u.FeedingType.Null {
			return invalid("feeding_type", "cannot be null")
		}
		if !ValidFeedingTypes[u.FeedingType.Value] {
			return enumError("feeding_type", u.FeedingType.Value, feedingTypeOrder)
		}
	}
	if u.DurationMinutes.Set && !u.DurationMinutes.Null && u.DurationMinutes.Value < 0 {
		return invalid("duration_minutes", "must not be negative")
	}
	if u.AmountOz.Set && !u.AmountOz.Null && u.AmountOz.Value < 0 {
		return invalid("amount_oz", "must not be negative")
	}
	return nil
}

// MedicationCreate holds the fields for a new medication dose.
type MedicationCreate struct {
	Timestamp      *time.Time `json:"timestamp"`
	MedicationName string     `json:"medication_name"`
	Dosage         string     `json:"dosage"`
	Notes          *string    `json:"notes"`
}

func (c MedicationCreate) Validate() error {
	if strings.TrimSpace(c.MedicationName) == "" {
		return invalid("medication_name", "is required")
	}
	if strings.TrimSpace(c.Dosage) == "" {
		return invalid("dosage", "is required")
	}
	return nil
}

// MedicationUpdate is a partial update; absent fields are left unchanged.
type MedicationUpdate struct {
	Timestamp      Optional[time.Time] `json:"timestamp"`
	MedicationName Optional[string]    `json:"medication_name"`
	Dosage         Optional[string]    `json:"dosage"`
	Notes          Optional[string]    `json:"notes"`
}

func (u MedicationUpdate) Validate() error {
	if u.Timestamp.Set && u.Timestamp.Null {
		return invalid("timestamp", "cannot be null")
	}
	if u.MedicationName.Set && (u.MedicationName.Null || strings.TrimSpace(u.MedicationName.Value) == "") {
		return invalid("medication_name", "cannot be empty")
	}
	if u.Dosage.Set && (u.Dosage.Null || strings.TrimSpace(u.Dosage.Value) == "") {
		return invalid("dosage", "cannot be empty")
	}
	return nil
}

// TemperatureCreate holds the fields for a new temperature reading.
type TemperatureCreate struct {
	Timestamp          *time.Time `json:"timestamp"`
	TemperatureCelsius float64    `json:"temperature_celsius"`
	Location           *string    `json:"location"`
	Notes              *string    `json:"notes"`
}

func (c TemperatureCreate) Validate() error {
	if c.Location != nil && !ValidTemperatureLocations[*c.Location] {
		return enumError("location", *c.Location, locationOrder)
	}
	return nil
}

// TemperatureUpdate is a partial update; absent fields are left unchanged.
type TemperatureUpdate struct {
	Timestamp          Optional[time.Time] `json:"timestamp"`
	TemperatureCelsius Optional[float64]   `json:"temperature_celsius"`
	Location           Optional[string]    `json:"location"`
	Notes              Optional[string]    `json:"notes"`
}

func (u TemperatureUpdate) Validate() error {
	if u.Timestamp.Set && u.Timestamp.Null {
		return invalid("timestamp", "cannot be null")
	}
	if u.TemperatureCelsius.Set && u.TemperatureCelsius.Null {
		return invalid("temperature_celsius", "cannot be null")
	}
	if u.Location.Set && !u.Location.Null && !ValidTemperatureLocations[u.Location.Value] {
		return enumError("location", u.Location.Value, locationOrder)
	}
	return nil
}
