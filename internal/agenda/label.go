package agenda

import "github.com/medagenda/agenda-api/internal/model"

// FormatLabel renders the current range for display: "November 2025" for
// month view, otherwise a short start-end span that only mentions years when
// the range crosses a year boundary. A single-day range renders as one date.
func FormatLabel(r model.Range, view model.ViewMode) string {
	if view == model.ViewMonth {
		return r.Start.Format("January 2006")
	}
	sy, sm, sd := r.Start.Date()
	ey, em, ed := r.End.Date()
	if sy == ey && sm == em && sd == ed {
		return r.Start.Format("Jan 2")
	}
	if sy != ey {
		return r.Start.Format("Jan 2, 2006") + " — " + r.End.Format("Jan 2, 2006")
	}
	return r.Start.Format("Jan 2") + " — " + r.End.Format("Jan 2")
}
