package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/medagenda/agenda-api/internal/model"
)

func stateAt(pivot time.Time, view model.ViewMode) model.ViewModelState {
	return model.ViewModelState{Pivot: pivot, View: view}
}

func TestNavigateDay(t *testing.T) {
	s := stateAt(time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC), model.ViewDay)

	Next(&s)
	assert.Equal(t, 16, s.Pivot.Day())

	Prev(&s)
	Prev(&s)
	assert.Equal(t, 14, s.Pivot.Day())
}

func TestNavigateWeek(t *testing.T) {
	s := stateAt(time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC), model.ViewWeek)

	Next(&s)
	assert.Equal(t, time.Date(2025, 11, 22, 0, 0, 0, 0, time.UTC), s.Pivot)
}

func TestNavigateMonthRoundTrip(t *testing.T) {
	s := stateAt(time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC), model.ViewMonth)

	Next(&s)
	assert.Equal(t, time.January, s.Pivot.Month())
	assert.Equal(t, 2026, s.Pivot.Year())

	Prev(&s)
	assert.Equal(t, time.December, s.Pivot.Month())
	assert.Equal(t, 2025, s.Pivot.Year())
}

func TestNavigateMonthClampsDayOfMonth(t *testing.T) {
	s := stateAt(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), model.ViewMonth)

	Next(&s)
	assert.Equal(t, time.February, s.Pivot.Month())
	assert.Equal(t, 28, s.Pivot.Day())

	// round trip still lands in the original month
	Prev(&s)
	assert.Equal(t, time.January, s.Pivot.Month())
}

func TestNavigateMonthLeapFebruary(t *testing.T) {
	s := stateAt(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), model.ViewMonth)

	Next(&s)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), s.Pivot)
}

func TestTodayPreservesView(t *testing.T) {
	s := stateAt(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), model.ViewMonth)
	now := time.Date(2025, 11, 15, 9, 30, 0, 0, time.UTC)

	Today(&s, now)
	assert.Equal(t, now, s.Pivot)
	assert.Equal(t, model.ViewMonth, s.View)
}

func TestSetViewKeepsPivot(t *testing.T) {
	pivot := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
	s := stateAt(pivot, model.ViewWeek)

	SetView(&s, model.ViewDay)
	assert.Equal(t, model.ViewDay, s.View)
	assert.Equal(t, pivot, s.Pivot)
}
