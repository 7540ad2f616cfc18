package model

import (
	"strconv"
	"strings"
)

// FormatDecimal renders v with the shortest exact digits but always at least
// one fractional digit: 3 -> "3.0", 3.5 -> "3.5", 2.25 -> "2.25".
func FormatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
