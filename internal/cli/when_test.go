package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rcliao/puffin/internal/model"
)

func TestParseAgo(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"30s", 30 * time.Second, false},
		{"45m", 45 * time.Minute, false},
		{"2h", 2 * time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"", 0, true},
		{"2w", 0, true},
		{"-1h", 0, true},
		{"1.5h", 0, true},
	}
	for _, tt := range tests {
		got, err := parseAgo(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAgo(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAgo(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseWhen(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	if got, err := parseWhen("at", "", now, time.UTC); err != nil || got != nil {
		t.Errorf("empty: got %v, %v", got, err)
	}
	if got, err := parseWhen("at", "now", now, time.UTC); err != nil || !got.Equal(now) {
		t.Errorf("now: got %v, %v", got, err)
	}
	if got, err := parseWhen("at", "20m", now, time.UTC); err != nil || !got.Equal(now.Add(-20*time.Minute)) {
		t.Errorf("ago: got %v, %v", got, err)
	}
	if got, err := parseWhen("at", "2026-10-18 21:15", now, time.UTC); err != nil || !got.Equal(time.Date(2026, 10, 18, 21, 15, 0, 0, time.UTC)) {
		t.Errorf("absolute: got %v, %v", got, err)
	}
	if _, err := parseWhen("at", "last tuesday", now, time.UTC); err == nil {
		t.Error("expected error")
	}
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("PDT", -7*3600)
	start, end := dayBounds(time.Date(2026, 10, 19, 15, 30, 0, 0, loc))
	if !start.Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, loc)) {
		t.Errorf("unexpected start %v", start)
	}
	if !end.Equal(time.Date(2026, 10, 19, 23, 59, 59, 999999999, loc)) {
		t.Errorf("unexpected end %v", end)
	}
}

func TestFahrenheitToCelsius(t *testing.T) {
	if got := fahrenheitToCelsius(212); got != 100 {
		t.Errorf("212°F = %v°C, want 100", got)
	}
	if got := fahrenheitToCelsius(32); got != 0 {
		t.Errorf("32°F = %v°C, want 0", got)
	}
}

func TestWriteActivitiesText(t *testing.T) {
	var buf bytes.Buffer
	writeActivitiesText(&buf, nil, time.UTC)
	if strings.TrimSpace(buf.String()) != "No activity." {
		t.Errorf("unexpected empty output %q", buf.String())
	}

	buf.Reset()
	notes := "fussy"
	writeActivitiesText(&buf, []model.Activity{{
		Timestamp: time.Date(2026, 10, 19, 9, 5, 0, 0, time.UTC),
		Emoji:     "\U0001f37c",
		Label:     "Bottle",
		Detail:    "3.5 oz",
		Notes:     &notes,
	}}, time.UTC)
	out := buf.String()
	for _, want := range []string{"Mon Oct 19 09:05", "Bottle", "3.5 oz", "fussy"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}
