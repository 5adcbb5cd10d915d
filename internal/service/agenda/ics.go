package agenda

import (
	"context"

	ical "github.com/arran4/golang-ical"
)

// ExportICS renders the session's visible events as an iCalendar feed, so
// practitioners can subscribe from their own calendar apps.
func (s *Service) ExportICS(ctx context.Context, id string) (string, error) {
	snap, err := s.Snapshot(ctx, id)
	if err != nil {
		return "", err
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//medagenda//agenda-api//EN")

	now := s.now()
	for _, ev := range snap.Events {
		e := cal.AddEvent(ev.ID)
		e.SetDtStampTime(now)
		e.SetStartAt(ev.Start)
		e.SetEndAt(ev.End)
		e.SetSummary(ev.Title)
		if ev.Notes != "" {
			e.SetDescription(ev.Notes)
		}
		if ev.SiteName != "" {
			e.SetLocation(ev.SiteName)
		}
	}
	return cal.Serialize(), nil
}
