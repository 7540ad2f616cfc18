// Package model defines the core care-log data types.
package model

import (
	"fmt"
	"strings"
)

// Kind names one of the four record collections.
type Kind string

const (
	KindDiaper      Kind = "diaper"
	KindFeeding     Kind = "feeding"
	KindMedication  Kind = "medication"
	KindTemperature Kind = "temperature"
)

// Kinds lists every record kind in feed concatenation order.
var Kinds = []Kind{KindDiaper, KindFeeding, KindMedication, KindTemperature}

// Plural returns the collection name used in URLs and exports.
func (k Kind) Plural() string {
	return string(k) + "s"
}

// Noun returns the human name used in not-found messages.
func (k Kind) Noun() string {
	switch k {
	case KindDiaper:
		return "Diaper change"
	case KindFeeding:
		return "Feeding"
	case KindMedication:
		return "Medication record"
	case KindTemperature:
		return "Temperature reading"
	}
	return string(k)
}

// ParseKind accepts a kind in singular or plural form, plus a few short aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "diaper", "diapers":
		return KindDiaper, nil
	case "feeding", "feedings", "feed":
		return KindFeeding, nil
	case "medication", "medications", "med", "meds":
		return KindMedication, nil
	case "temperature", "temperatures", "temp", "temps":
		return KindTemperature, nil
	}
	return "", fmt.Errorf("unknown kind %q (valid: diaper, feeding, medication, temperature)", s)
}
