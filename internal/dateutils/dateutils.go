// Package dateutils provides the date parsing, formatting and clock helpers
// used by the gift ledger.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts understood on input. Output is always DateLayoutISO.
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutUS        = "01/02/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutWithMonth = "2-Jan-2006"
)

// CommonFormats is the ordered list of layouts ParseDate tries. ISO forms come
// first so that anything this package writes parses back unambiguously.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	"2006-01-02T15:04:05",
	time.RFC3339,
	DateLayoutEuropean,
	"2006/01/02",
	DateLayoutUS,
	DateLayoutWithMonth,
	"Jan 2, 2006",
	"January 2, 2006",
}

var whitespace = regexp.MustCompile(`\s+`)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// Today returns the clock's current calendar date as a civil date.
func Today(clock Clock) time.Time {
	if clock == nil {
		clock = SystemClock
	}
	return CivilDate(clock())
}

// CivilDate drops the time of day and location, keeping the calendar date
// as seen in t's own location.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate attempts to parse a date string using CommonFormats.
// Returns the civil date and the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("unable to parse date: empty value")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return CivilDate(t), format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString trims and collapses internal whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}
