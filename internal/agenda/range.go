// Package agenda implements the appointment view model: pure functions that
// turn a navigation cursor, reference data and filter criteria into the
// visible date range, the visible event list and a display label.
package agenda

import (
	"time"

	"github.com/medagenda/agenda-api/internal/model"
)

// ResolveRange computes the inclusive window for a pivot date and view mode.
// Weeks start on Sunday regardless of locale; the console has always rendered
// Sunday-first grids and the range must line up with them.
func ResolveRange(pivot time.Time, view model.ViewMode) model.Range {
	switch view {
	case model.ViewWeek:
		start := startOfDay(pivot.AddDate(0, 0, -int(pivot.Weekday())))
		return model.Range{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}
	case model.ViewMonth:
		y, m, _ := pivot.Date()
		start := time.Date(y, m, 1, 0, 0, 0, 0, pivot.Location())
		// day 0 of the following month rolls back to the last day of this
		// one, so leap years come out right without a month-length table
		last := time.Date(y, m+1, 0, 0, 0, 0, 0, pivot.Location())
		return model.Range{Start: start, End: endOfDay(last)}
	default:
		return model.Range{Start: startOfDay(pivot), End: endOfDay(pivot)}
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
