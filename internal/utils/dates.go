package utils

import (
	"time"

	"github.com/SscSPs/ledger_books/internal/core/domain"
)

// Clock supplies the current time. Services take one so tests can pin "today".
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct{ At time.Time }

func (c FixedClock) Now() time.Time { return c.At }

// TodayDate returns today's calendar date as YYYY-MM-DD (UTC).
func TodayDate(clock Clock) string {
	return clock.Now().UTC().Format(domain.DateLayout)
}

// DateDaysAgo returns the calendar date n days before today.
func DateDaysAgo(clock Clock, days int) string {
	return clock.Now().UTC().AddDate(0, 0, -days).Format(domain.DateLayout)
}

// NowTimestamp returns the RFC 3339 timestamp written into createdAt fields.
func NowTimestamp(clock Clock) string {
	return clock.Now().UTC().Format(time.RFC3339Nano)
}
