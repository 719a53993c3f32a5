package timeoff

import "time"

// Day truncates t to midnight UTC so that date comparisons ignore clock time.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthBounds returns the first and last day of the given month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// OverlapsMonth reports whether the request interval shares at least one
// calendar day with [monthStart, monthEnd]: the start falls in the month,
// the end falls in the month, or the request spans the whole month.
func OverlapsMonth(start, end, monthStart, monthEnd time.Time) bool {
	start, end = Day(start), Day(end)
	if !start.Before(monthStart) && !start.After(monthEnd) {
		return true
	}
	if !end.Before(monthStart) && !end.After(monthEnd) {
		return true
	}
	return !start.After(monthStart) && !end.Before(monthEnd)
}

// InclusiveDays returns the day count of [start, end]; equal dates are a
// single-day request.
func InclusiveDays(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours()/24) + 1
}
