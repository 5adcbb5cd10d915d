package model

import "time"

type EventStatus string

const (
	EventStatusActive    EventStatus = "ACTIVE"
	EventStatusConfirmed EventStatus = "CONFIRMED"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusArchived  EventStatus = "ARCHIVED"
)

// Valid reports whether the status is one of the closed set. Events carrying
// anything else must never match a filter, not even an empty one.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusActive, EventStatusConfirmed, EventStatusCancelled, EventStatusArchived:
		return true
	}
	return false
}

type EventType string

const (
	EventTypeAppointment EventType = "APPOINTMENT"
	EventTypeLeave       EventType = "LEAVE"
	EventTypePersonal    EventType = "PERSONAL"
	EventTypeExternal    EventType = "EXTERNAL_EVENT"
)

func (t EventType) Valid() bool {
	switch t {
	case EventTypeAppointment, EventTypeLeave, EventTypePersonal, EventTypeExternal:
		return true
	}
	return false
}

// CalendarEvent is a read-only projection of a platform event. PatientExID
// may hold either a patient id or the patient's external-system identifier.
type CalendarEvent struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Status      EventStatus `json:"status"`
	Type        EventType   `json:"type"`
	CalendarID  string      `json:"calendar_id"`
	MotiveID    string      `json:"motive_id,omitempty"`
	PatientExID string      `json:"patient_ex_id,omitempty"`
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
	Notes       string      `json:"notes,omitempty"`
}
