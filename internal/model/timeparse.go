package model

import (
	"strconv"
	"time"
)

// zonelessLayouts are read in the caller's location.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime reads an ISO-8601 timestamp for field. Values without a zone
// offset are taken in loc.
func ParseTime(field, v string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ValidationError{Field: field, Message: "expected an ISO-8601 datetime, got " + strconv.Quote(v)}
}
