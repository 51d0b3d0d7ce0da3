package sqlite

import (
	"time"
)

// DateLayout is the storage format for calendar days.
const DateLayout = "2006-01-02"

// FormatTimeForDB formats a time.Time value as a UTC RFC3339 string. Storing
// UTC keeps lexical order equal to chronological order.
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtrForDB formats a *time.Time value as RFC3339 string, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
// and returns it in the local zone.
func ParseTimeFromDB(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}

// FormatDateForDB formats the local calendar day of t.
func FormatDateForDB(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// ParseDateFromDB parses a stored calendar day as local midnight.
func ParseDateFromDB(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}
