// Package datetime provides calendar date utility functions.
package datetime

import (
	"time"

	"github.com/iwvelando/savings-orbit/pkg/constants"
)

const (
	// DateLayout is the format expected in config files and is also the output
	// date format.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses an ISO calendar date into midnight UTC of that date.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

// Midnight drops the time of day and zone from t, keeping only its calendar
// date as seen on its own clock.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in the local zone, as midnight UTC.
func Today() time.Time {
	return Midnight(time.Now())
}

// DaysBetween returns the number of calendar days from start to end. It is
// negative when end is before start. Both dates are whole UTC days, so the
// count is exact for any span.
func DaysBetween(start, end time.Time) int {
	return int((Midnight(end).Unix() - Midnight(start).Unix()) / constants.SecondsPerDay)
}

// AddDays returns the calendar date offset by the given number of days.
func AddDays(date time.Time, days int) time.Time {
	return Midnight(date).AddDate(0, 0, days)
}

// OffsetDate returns the string-formatted date offset by the given number of
// days relative to the given date.
func OffsetDate(date string, days int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return date, err
	}
	return AddDays(t, days).Format(DateLayout), nil
}

// Format renders the calendar date of t in DateLayout.
func Format(t time.Time) string {
	return Midnight(t).Format(DateLayout)
}

// DateBeforeDate returns true if firstDate is strictly before secondDate.
func DateBeforeDate(firstDate string, secondDate string) (bool, error) {
	firstDateT, err := ParseDate(firstDate)
	if err != nil {
		return false, err
	}
	secondDateT, err := ParseDate(secondDate)
	if err != nil {
		return false, err
	}
	return firstDateT.Before(secondDateT), nil
}
