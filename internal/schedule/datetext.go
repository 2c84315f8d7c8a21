package schedule

import (
	"strconv"
	"strings"
	"time"
)

// dateFormats are tried in order for date-like text cells.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseDateText reads a date cell that arrived as text: either a serial
// written as a number or a timestamp in one of the recognised layouts,
// which is converted with FromDate.
func ParseDateText(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	for _, layout := range dateFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return FromDate(ts.UTC()), true
		}
	}
	return 0, false
}
