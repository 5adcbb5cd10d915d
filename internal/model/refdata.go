package model

type Site struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

type HealthProfessional struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Specialty string `json:"specialty,omitempty"`
}

func (hp HealthProfessional) DisplayName() string {
	if hp.FirstName == "" {
		return hp.LastName
	}
	return hp.FirstName + " " + hp.LastName
}

// Patient carries an optional external identifier; events booked through an
// external system reference the patient by that id instead of the internal one.
type Patient struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email,omitempty"`
}

func (p Patient) DisplayName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}

// Motive is a configured appointment reason attached to a calendar.
type Motive struct {
	ID              string `json:"id"`
	CalendarID      string `json:"calendar_id"`
	Label           string `json:"label"`
	Color           string `json:"color,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}
