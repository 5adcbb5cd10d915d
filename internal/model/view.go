package model

import "time"

type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

func (v ViewMode) Valid() bool {
	switch v {
	case ViewDay, ViewWeek, ViewMonth:
		return true
	}
	return false
}

// Range is the inclusive window derived from the pivot date and view mode.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Criteria are the multi-select filter sets. An empty set on any dimension
// means "no filtering on that dimension", never "match nothing".
type Criteria struct {
	SiteIDs    []string      `json:"site_ids,omitempty"`
	HPIDs      []string      `json:"hp_ids,omitempty"`
	PatientIDs []string      `json:"patient_ids,omitempty"`
	Statuses   []EventStatus `json:"statuses,omitempty"`
	Types      []EventType   `json:"types,omitempty"`
}

// ViewModelState is the full serializable console state for one session:
// navigation cursor, filter criteria and the subscribed-calendars layer.
type ViewModelState struct {
	Pivot              time.Time `json:"pivot"`
	View               ViewMode  `json:"view"`
	Criteria           Criteria  `json:"criteria"`
	VisibleCalendarIDs []string  `json:"visible_calendar_ids"`
}

func NewViewModelState(now time.Time, visibleCalendarIDs []string) ViewModelState {
	return ViewModelState{
		Pivot:              now,
		View:               ViewWeek,
		VisibleCalendarIDs: visibleCalendarIDs,
	}
}
