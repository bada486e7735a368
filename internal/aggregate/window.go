package aggregate

import "time"

// Window is a half-open time range [Start, End) used to scope
// aggregations.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window. A zero window
// contains everything.
func (w Window) Contains(t time.Time) bool {
	if w.Start.IsZero() && w.End.IsZero() {
		return true
	}
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && !t.Before(w.End) {
		return false
	}
	return true
}

// CurrentMonth returns the window covering the calendar month of now.
func CurrentMonth(now time.Time) Window {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// TrailingMonths returns the window covering the n calendar months
// ending with the month of now.
func TrailingMonths(now time.Time, n int) Window {
	if n < 1 {
		n = 1
	}
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return Window{Start: end.AddDate(0, -n, 0), End: end}
}

// TrailingDays returns the window covering the last n days up to and
// including now.
func TrailingDays(now time.Time, n int) Window {
	if n < 1 {
		n = 1
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Window{Start: day.AddDate(0, 0, -n), End: day.AddDate(0, 0, 1)}
}
