package dashboard

import (
	"fmt"
	"strconv"

	"github.com/rcliao/puffin/internal/model"
)

type presentation struct {
	emoji string
	label string
}

var diaperPresentation = map[string]presentation{
	"pee":  {emoji: "\U0001f4a7", label: "Pee"},
	"poop": {emoji: "\U0001f4a9", label: "Poop"},
	"both": {emoji: "\U0001f4a7\U0001f4a9", label: "Pee + Poop"},
}

var feedingPresentation = map[string]presentation{
	"breast_left":  {emoji: "\U0001f931", label: "Left Breast"},
	"breast_right": {emoji: "\U0001f931", label: "Right Breast"},
	"breast_both":  {emoji: "\U0001f931", label: "Both Breasts"},
	"bottle":       {emoji: "\U0001f37c", label: "Bottle"},
}

const (
	diaperFallbackEmoji  = "\U0001f9f7"
	feedingFallbackEmoji = "\U0001f37c"
	medicationEmoji      = "\U0001f48a"
	temperatureEmoji     = "\U0001f321\ufe0f"
)

// NormalizeDiaper maps a diaper change into the shared activity shape.
func NormalizeDiaper(d model.DiaperChange) model.Activity {
	p, ok := diaperPresentation[d.Type]
	if !ok {
		p = presentation{emoji: diaperFallbackEmoji, label: d.Type}
	}
	return model.Activity{
		Type:      model.KindDiaper,
		Subtype:   d.Type,
		Timestamp: d.Timestamp,
		ID:        d.ID,
		Emoji:     p.emoji,
		Label:     p.label,
		Detail:    "",
		Summary:   "Diaper: " + d.Type,
		Notes:     d.Notes,
	}
}

// NormalizeFeeding maps a feeding into the shared activity shape. The detail
// shows the amount when one is recorded, else the duration.
func NormalizeFeeding(f model.Feeding) model.Activity {
	p, ok := feedingPresentation[f.FeedingType]
	if !ok {
		p = presentation{emoji: feedingFallbackEmoji, label: f.FeedingType}
	}

	var detail string
	switch {
	case f.AmountOz != nil && *f.AmountOz != 0:
		detail = model.FormatDecimal(*f.AmountOz) + " oz"
	case f.DurationMinutes != nil && *f.DurationMinutes != 0:
		detail = fmt.Sprintf("%d min", *f.DurationMinutes)
	}

	return model.Activity{
		Type:      model.KindFeeding,
		Subtype:   f.FeedingType,
		Timestamp: f.Timestamp,
		ID:        f.ID,
		Emoji:     p.emoji,
		Label:     p.label,
		Detail:    detail,
		Summary:   "Feeding: " + f.FeedingType,
		Notes:     f.Notes,
	}
}

// NormalizeMedication maps a medication dose into the shared activity shape.
func NormalizeMedication(m model.Medication) model.Activity {
	return model.Activity{
		Type:      model.KindMedication,
		Subtype:   string(model.KindMedication),
		Timestamp: m.Timestamp,
		ID:        m.ID,
		Emoji:     medicationEmoji,
		Label:     m.MedicationName,
		Detail:    m.Dosage,
		Summary:   "Med: " + m.MedicationName,
		Notes:     m.Notes,
	}
}

// NormalizeTemperature maps a reading into the shared activity shape,
// displayed in Fahrenheit.
func NormalizeTemperature(t model.TemperatureReading) model.Activity {
	degrees := FormatFahrenheit(t.TemperatureCelsius)
	return model.Activity{
		Type:      model.KindTemperature,
		Subtype:   string(model.KindTemperature),
		Timestamp: t.Timestamp,
		ID:        t.ID,
		Emoji:     temperatureEmoji,
		Label:     "Temperature",
		Detail:    degrees,
		Summary:   "Temp: " + degrees,
		Notes:     t.Notes,
	}
}

// FormatFahrenheit renders a Celsius value as e.g. "99.5°F", rounded to one
// decimal place from the exact converted value.
func FormatFahrenheit(celsius float64) string {
	return strconv.FormatFloat(celsius*9/5+32, 'f', 1, 64) + "°F"
}
