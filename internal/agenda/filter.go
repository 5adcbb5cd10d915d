package agenda

import "github.com/medagenda/agenda-api/internal/model"

// FilterEvents returns the subset of events that should render, in input
// order. Gates, in short-circuit order:
//
//  1. the event's calendar must resolve (orphaned events are never shown)
//  2. the calendar must be in the visible ("subscribed") set
//  3. site filter
//  4. health-professional filter
//  5. patient filter, matching PatientExID against both the selected ids and
//     the external ids of the selected patients
//  6. status filter
//  7. type filter
//
// An empty criterion set matches everything on that dimension. Events with a
// status or type outside the closed enums never match anything.
func FilterEvents(events []model.CalendarEvent, idx Index, visibleCalendarIDs []string, c model.Criteria) []model.CalendarEvent {
	visible := toSet(visibleCalendarIDs)
	sites := toSet(c.SiteIDs)
	hps := toSet(c.HPIDs)
	patients := patientMatchSet(c.PatientIDs, idx)
	statuses := make(map[model.EventStatus]struct{}, len(c.Statuses))
	for _, s := range c.Statuses {
		statuses[s] = struct{}{}
	}
	types := make(map[model.EventType]struct{}, len(c.Types))
	for _, t := range c.Types {
		types[t] = struct{}{}
	}

	out := make([]model.CalendarEvent, 0, len(events))
	for _, ev := range events {
		cal, ok := idx.CalendarByID[ev.CalendarID]
		if !ok {
			continue
		}
		if _, ok := visible[ev.CalendarID]; !ok {
			continue
		}
		if len(sites) > 0 {
			if _, ok := sites[cal.SiteID]; !ok {
				continue
			}
		}
		if len(hps) > 0 {
			if _, ok := hps[cal.HPID]; !ok {
				continue
			}
		}
		if len(patients) > 0 {
			if _, ok := patients[ev.PatientExID]; !ok {
				continue
			}
		}
		if !ev.Status.Valid() || !ev.Type.Valid() {
			continue
		}
		if len(statuses) > 0 {
			if _, ok := statuses[ev.Status]; !ok {
				continue
			}
		}
		if len(types) > 0 {
			if _, ok := types[ev.Type]; !ok {
				continue
			}
		}
		out = append(out, ev)
	}
	return out
}

// patientMatchSet expands selected patient ids into every identifier an
// event's PatientExID may legitimately carry: the id itself, plus the
// external id of any selected patient that has one.
func patientMatchSet(selected []string, idx Index) map[string]struct{} {
	set := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		set[id] = struct{}{}
		if p, ok := idx.PatientByID[id]; ok && p.ExternalID != "" {
			set[p.ExternalID] = struct{}{}
		}
	}
	return set
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
