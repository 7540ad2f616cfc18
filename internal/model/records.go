package model

import "time"

// DiaperChange is a single diaper change.
type DiaperChange struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// Feeding is a breast or bottle feeding session.
type Feeding struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	FeedingType     string    `json:"feeding_type"`
	DurationMinutes *int      `json:"duration_minutes"`
	AmountOz        *float64  `json:"amount_oz"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// Medication is a single medication dose.
type Medication struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	MedicationName string    `json:"medication_name"`
	Dosage         string    `json:"dosage"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// TemperatureReading is a body temperature measurement, stored in Celsius.
type TemperatureReading struct {
	ID                 string    `json:"id"`
	Timestamp          time.Time `json:"timestamp"`
	TemperatureCelsius float64   `json:"temperature_celsius"`
	Location           *string   `json:"location"`
	Notes              *string   `json:"notes"`
	CreatedAt          time.Time `json:"created_at"`
}

// ValidDiaperTypes are the allowed diaper change types.
var ValidDiaperTypes = map[string]bool{
	"pee":  true,
	"poop": true,
	"both": true,
}

// ValidFeedingTypes are the allowed feeding types.
var ValidFeedingTypes = map[string]bool{
	"breast_left":  true,
	"breast_right": true,
	"breast_both":  true,
	"bottle":       true,
}

// ValidTemperatureLocations are the allowed measurement sites.
var ValidTemperatureLocations = map[string]bool{
	"rectal":   true,
	"oral":     true,
	"axillary": true,
	"temporal": true,
}
