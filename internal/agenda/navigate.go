package agenda

import (
	"time"

	"github.com/medagenda/agenda-api/internal/model"
)

// Today resets the pivot to the current date, preserving the view mode.
func Today(s *model.ViewModelState, now time.Time) {
	s.Pivot = now
}

// Next advances the pivot by one unit of the current view.
func Next(s *model.ViewModelState) {
	s.Pivot = step(s.Pivot, s.View, 1)
}

// Prev retreats the pivot by one unit of the current view.
func Prev(s *model.ViewModelState) {
	s.Pivot = step(s.Pivot, s.View, -1)
}

// SetView changes the granularity without moving the pivot.
func SetView(s *model.ViewModelState, v model.ViewMode) {
	s.View = v
}

func step(pivot time.Time, view model.ViewMode, n int) time.Time {
	switch view {
	case model.ViewWeek:
		return pivot.AddDate(0, 0, 7*n)
	case model.ViewMonth:
		return addMonths(pivot, n)
	default:
		return pivot.AddDate(0, 0, n)
	}
}

// addMonths steps by calendar months with day-of-month clamping, so Jan 31
// lands on Feb 28/29 rather than overflowing into March. Keeps next/prev a
// round trip on the month.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	last := time.Date(target.Year(), target.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > last {
		d = last
	}
	h, min, sec := t.Clock()
	return time.Date(target.Year(), target.Month(), d, h, min, sec, t.Nanosecond(), t.Location())
}
