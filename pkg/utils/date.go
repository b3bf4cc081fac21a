package utils

import (
	"fmt"
	"time"
)

// DateFormat is the wire format for calendar dates at every API boundary.
const DateFormat = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD date string in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a time as an ISO YYYY-MM-DD string.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// DaysBetween returns the whole number of days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// FirstTradingDayOfMonth reports whether the bar at index i opens a new
// calendar month relative to index i-1. Index 0 always starts a month.
func FirstTradingDayOfMonth(dates []time.Time, i int) bool {
	if i == 0 {
		return true
	}
	prev := dates[i-1]
	cur := dates[i]
	return cur.Month() != prev.Month() || cur.Year() != prev.Year()
}

// PeriodLookback converts a relative period string into the start of a
// window ending at the given time.
func PeriodLookback(end time.Time, period string) (time.Time, error) {
	switch period {
	case "1d":
		return end.AddDate(0, 0, -1), nil
	case "5d":
		return end.AddDate(0, 0, -5), nil
	case "1mo":
		return end.AddDate(0, -1, 0), nil
	case "3mo":
		return end.AddDate(0, -3, 0), nil
	case "6mo":
		return end.AddDate(0, -6, 0), nil
	case "1y":
		return end.AddDate(-1, 0, 0), nil
	case "2y":
		return end.AddDate(-2, 0, 0), nil
	case "5y":
		return end.AddDate(-5, 0, 0), nil
	case "10y":
		return end.AddDate(-10, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown period %q", period)
	}
}

// PeriodToRange converts a relative period string ("1mo", "6mo", "1y", ...)
// into an absolute [start, end] pair anchored at the given start date.
func PeriodToRange(start time.Time, period string) (time.Time, time.Time, error) {
	switch period {
	case "1d":
		return start, start.AddDate(0, 0, 1), nil
	case "5d":
		return start, start.AddDate(0, 0, 5), nil
	case "1mo":
		return start, start.AddDate(0, 1, 0), nil
	case "3mo":
		return start, start.AddDate(0, 3, 0), nil
	case "6mo":
		return start, start.AddDate(0, 6, 0), nil
	case "1y":
		return start, start.AddDate(1, 0, 0), nil
	case "2y":
		return start, start.AddDate(2, 0, 0), nil
	case "5y":
		return start, start.AddDate(5, 0, 0), nil
	case "10y":
		return start, start.AddDate(10, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period %q", period)
	}
}
