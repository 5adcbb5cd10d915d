package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/medagenda/agenda-api/internal/model"
)

func TestResolveRangeDay(t *testing.T) {
	pivot := time.Date(2025, 11, 15, 14, 30, 12, 0, time.UTC)
	r := ResolveRange(pivot, model.ViewDay)

	assert.Equal(t, time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2025, 11, 15, 23, 59, 59, 999000000, time.UTC), r.End)
}

func TestResolveRangeWeekStartsSunday(t *testing.T) {
	// 2025-11-15 is a Saturday; the week containing it starts Sunday Nov 9
	pivot := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)
	r := ResolveRange(pivot, model.ViewWeek)

	assert.Equal(t, time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2025, 11, 15, 23, 59, 59, 999000000, time.UTC), r.End)
	assert.Equal(t, time.Sunday, r.Start.Weekday())
}

func TestResolveRangeWeekSpansSevenDays(t *testing.T) {
	pivot := time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		r := ResolveRange(pivot.AddDate(0, 0, i), model.ViewWeek)
		assert.Equal(t, time.Sunday, r.Start.Weekday())
		assert.Equal(t, 6, int(r.End.Sub(r.Start).Hours())/24)
		assert.True(t, r.Start.Before(r.End))
	}
}

func TestResolveRangeMonthLeapYear(t *testing.T) {
	pivot := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	r := ResolveRange(pivot, model.ViewMonth)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999000000, time.UTC), r.End)
}

func TestResolveRangeMonthNonLeap(t *testing.T) {
	pivot := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	r := ResolveRange(pivot, model.ViewMonth)

	assert.Equal(t, 28, r.End.Day())
}

func TestResolveRangeDecember(t *testing.T) {
	pivot := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	r := ResolveRange(pivot, model.ViewMonth)

	assert.Equal(t, time.Date(2025, 12, 31, 23, 59, 59, 999000000, time.UTC), r.End)
}

func TestResolveRangeStartNeverAfterEnd(t *testing.T) {
	views := []model.ViewMode{model.ViewDay, model.ViewWeek, model.ViewMonth}
	pivot := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 400; i += 7 {
		for _, v := range views {
			r := ResolveRange(pivot.AddDate(0, 0, i), v)
			assert.True(t, r.Start.Before(r.End), "view %s pivot offset %d", v, i)
		}
	}
}
