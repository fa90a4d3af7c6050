package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date form the UI writes into every record.
const DateLayout = "2006-01-02"

var ledgerDateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseLedgerDate parses a stored date or timestamp. The boolean is false when
// the value is empty or in none of the accepted layouts.
func ParseLedgerDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range ledgerDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CalendarDate normalises a stored date to its YYYY-MM-DD form (UTC).
func CalendarDate(value string) (string, bool) {
	t, ok := ParseLedgerDate(value)
	if !ok {
		return "", false
	}
	return t.UTC().Format(DateLayout), true
}
