package timeutil

import (
	"fmt"
	"time"
)

// DateLayout is the YYYY-MM-DD layout used for leg dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	return t, nil
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsPastDate reports whether a YYYY-MM-DD date is strictly before the day of now.
// Both sides are compared as calendar dates, so today is not in the past.
func IsPastDate(date string, now time.Time) (bool, error) {
	d, err := ParseDate(date)
	if err != nil {
		return false, err
	}
	today, _ := ParseDate(FormatDate(now))
	return d.Before(today), nil
}

// PastDates returns the distinct dates from the list that are already in the
// past, in first-seen order. Malformed dates are skipped.
func PastDates(dates []string, now time.Time) []string {
	var past []string
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		if seen[d] {
			continue
		}
		seen[d] = true
		if ok, err := IsPastDate(d, now); err == nil && ok {
			past = append(past, d)
		}
	}
	return past
}
