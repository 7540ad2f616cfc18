package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/rcliao/puffin/internal/model"
)

// agoRegex matches relative offsets like "45m", "2h", "1d" meaning that long ago.
var agoRegex = regexp.MustCompile(`^(\d+)([dhms])$`)

// parseAgo parses an offset like "7d", "24h", "30m" into a time.Duration.
func parseAgo(s string) (time.Duration, error) {
	m := agoRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid format %q (use e.g. 1d, 2h, 30m, 60s)", s)
	}
	n, _ := strconv.Atoi(m[1])
	switch m[2] {
	case "d":
		return time.Duration(n) * 24 * time.Hour, nil
	case "h":
		return time.Duration(n) * time.Hour, nil
	case "m":
		return time.Duration(n) * time.Minute, nil
	case "s":
		return time.Duration(n) * time.Second, nil
	}
	return 0, fmt.Errorf("unknown unit %q", m[2])
}

// parseWhen reads a --at style value: empty for "not given", "now", a
// relative offset into the past ("20m"), or an ISO-8601 time.
func parseWhen(field, v string, now time.Time, loc *time.Location) (*time.Time, error) {
	switch v {
	case "":
		return nil, nil
	case "now":
		return &now, nil
	}
	if agoRegex.MatchString(v) {
		d, err := parseAgo(v)
		if err != nil {
			return nil, err
		}
		t := now.Add(-d)
		return &t, nil
	}
	t, err := model.ParseTime(field, v, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
