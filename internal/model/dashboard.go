package model

import "time"

// PeriodStats holds rolling counts for one record kind.
type PeriodStats struct {
	Today int `json:"today"`
	Week  int `json:"week"`
	Month int `json:"month"`
}

// Activity is one record of any kind, normalized for the merged feed.
type Activity struct {
	Type      Kind      `json:"type"`
	Subtype   string    `json:"subtype"`
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id"`
	Emoji     string    `json:"emoji"`
	Label     string    `json:"label"`
	Detail    string    `json:"detail"`
	Summary   string    `json:"summary"`
	Notes     *string   `json:"notes"`
}

// DashboardSummary is the composed dashboard response.
type DashboardSummary struct {
	DiaperStats          PeriodStats         `json:"diaper_stats"`
	FeedingStats         PeriodStats         `json:"feeding_stats"`
	MedicationCountToday int                 `json:"medication_count_today"`
	LastDiaper           *DiaperChange       `json:"last_diaper"`
	LastFeeding          *Feeding            `json:"last_feeding"`
	LastTemperature      *TemperatureReading `json:"last_temperature"`
	RecentActivities     []Activity          `json:"recent_activities"`
}

// Export is a full dump of every collection.
type Export struct {
	Diapers      []DiaperChange       `json:"diapers"`
	Feedings     []Feeding            `json:"feedings"`
	Medications  []Medication         `json:"medications"`
	Temperatures []TemperatureReading `json:"temperatures"`
}

// Len returns the total number of records in the export.
func (e *Export) Len() int {
	return len(e.Diapers) + len(e.Feedings) + len(e.Medications) + len(e.Temperatures)
}
