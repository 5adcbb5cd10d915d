package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/medagenda/agenda-api/internal/model"
)

func TestFormatLabelMonth(t *testing.T) {
	r := ResolveRange(time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC), model.ViewMonth)
	assert.Equal(t, "November 2025", FormatLabel(r, model.ViewMonth))
}

func TestFormatLabelWeek(t *testing.T) {
	// week of 2025-11-03 (Mon) runs Sunday Nov 2 through Saturday Nov 8
	r := ResolveRange(time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC), model.ViewWeek)
	assert.Equal(t, "Nov 2 — Nov 8", FormatLabel(r, model.ViewWeek))
}

func TestFormatLabelWeekAcrossYear(t *testing.T) {
	// 2026-01-01 is a Thursday; its week starts Sunday 2025-12-28
	r := ResolveRange(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), model.ViewWeek)
	assert.Equal(t, "Dec 28, 2025 — Jan 3, 2026", FormatLabel(r, model.ViewWeek))
}

func TestFormatLabelDay(t *testing.T) {
	r := ResolveRange(time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC), model.ViewDay)
	assert.Equal(t, "Nov 3", FormatLabel(r, model.ViewDay))
}
