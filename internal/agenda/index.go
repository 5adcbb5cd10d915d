package agenda

import "github.com/medagenda/agenda-api/internal/model"

// Index holds the lookup maps used to join events against reference data.
// Rebuilt whenever reference lists change, not on every filter pass.
type Index struct {
	CalendarByID        map[string]model.Calendar
	PatientByID         map[string]model.Patient
	PatientByExternalID map[string]model.Patient
}

func BuildIndex(calendars []model.Calendar, patients []model.Patient) Index {
	idx := Index{
		CalendarByID:        make(map[string]model.Calendar, len(calendars)),
		PatientByID:         make(map[string]model.Patient, len(patients)),
		PatientByExternalID: make(map[string]model.Patient, len(patients)),
	}
	for _, cal := range calendars {
		idx.CalendarByID[cal.ID] = cal
	}
	for _, p := range patients {
		idx.PatientByID[p.ID] = p
		if p.ExternalID != "" {
			idx.PatientByExternalID[p.ExternalID] = p
		}
	}
	return idx
}
