package api

import (
	"time"
)

// dateLayout is the wire format the client submits for dates.
const dateLayout = "2006-01-02"

// parseDate accepts "2006-01-02" and RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// monthRange returns the inclusive bounds of a calendar month.
func monthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// yearRange returns the inclusive bounds of a calendar year.
func yearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, 12, 31, 23, 59, 59, 0, time.Local)
	return start, end
}
