// Package backend is the client for the clinic platform REST API. It owns the
// wire formats and normalizes the platform's envelope variants before
// anything reaches the view model.
package backend

import (
	"time"

	"github.com/medagenda/agenda-api/internal/model"
)

// Wire shapes as the platform serves them. Field names are the platform's,
// not ours; mapping to internal/model happens in this package only.

type wireEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	Type        string    `json:"type"`
	CalendarID  string    `json:"calendarId"`
	MotiveID    string    `json:"motiveId"`
	PatientExID string    `json:"patientExId"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Notes       string    `json:"notes"`
}

type wireCalendar struct {
	ID       string `json:"id"`
	SiteID   string `json:"siteId"`
	HPID     string `json:"hpId"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	Timezone string `json:"timezone"`
}

type wireSite struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type wireHP struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Specialty string `json:"specialty"`
}

type wirePatient struct {
	ID         string `json:"id"`
	ExternalID string `json:"externalId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
}

type wireMotive struct {
	ID              string `json:"id"`
	CalendarID      string `json:"calendarId"`
	Label           string `json:"label"`
	Color           string `json:"color"`
	DurationMinutes int    `json:"durationMinutes"`
}

func (w wireCalendar) toModel() model.Calendar {
	return model.Calendar{
		ID:       w.ID,
		SiteID:   w.SiteID,
		HPID:     w.HPID,
		Label:    w.Label,
		Color:    w.Color,
		Timezone: w.Timezone,
	}
}

func (w wireSite) toModel() model.Site {
	return model.Site{ID: w.ID, Name: w.Name, Address: w.Address}
}

func (w wireHP) toModel() model.HealthProfessional {
	return model.HealthProfessional{
		ID:        w.ID,
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Specialty: w.Specialty,
	}
}

func (w wirePatient) toModel() model.Patient {
	return model.Patient{
		ID:         w.ID,
		ExternalID: w.ExternalID,
		FirstName:  w.FirstName,
		LastName:   w.LastName,
		Email:      w.Email,
	}
}

func (w wireMotive) toModel() model.Motive {
	return model.Motive{
		ID:              w.ID,
		CalendarID:      w.CalendarID,
		Label:           w.Label,
		Color:           w.Color,
		DurationMinutes: w.DurationMinutes,
	}
}

func (w wireEvent) toModel() model.CalendarEvent {
	return model.CalendarEvent{
		ID:          w.ID,
		Title:       w.Title,
		Status:      model.EventStatus(w.Status),
		Type:        model.EventType(w.Type),
		CalendarID:  w.CalendarID,
		MotiveID:    w.MotiveID,
		PatientExID: w.PatientExID,
		Start:       w.StartDate,
		End:         w.EndDate,
		Notes:       w.Notes,
	}
}
