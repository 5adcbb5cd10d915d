package agenda

import (
	"context"

	core "github.com/medagenda/agenda-api/internal/agenda"
	"github.com/medagenda/agenda-api/internal/model"
)

// DaySummary is one dashboard row: event counts for a single calendar day of
// the current window.
type DaySummary struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Confirmed int    `json:"confirmed"`
	Cancelled int    `json:"cancelled"`
}

// Summary buckets the session's visible events per day across the current
// window. Days without events still get a row so widgets can render a full
// grid.
func (s *Service) Summary(ctx context.Context, id string) ([]DaySummary, error) {
	state, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ref := s.refdata.Load(ctx)
	rng := core.ResolveRange(state.Pivot, state.View)

	var events []model.CalendarEvent
	if ref.HasCalendars() {
		events, err = s.events.ListEvents(ctx, rng.Start, rng.End)
		if err != nil {
			s.logger.Error(err, "events fetch failed, summarizing empty window", "session_id", id)
			events = nil
		}
	}
	visible := core.FilterEvents(events, ref.Index, state.VisibleCalendarIDs, state.Criteria)

	return summarizeByDay(visible, rng), nil
}

func summarizeByDay(events []model.CalendarEvent, rng model.Range) []DaySummary {
	const dayKey = "2006-01-02"

	buckets := make(map[string]*DaySummary)
	for _, ev := range events {
		key := ev.Start.In(rng.Start.Location()).Format(dayKey)
		row, ok := buckets[key]
		if !ok {
			row = &DaySummary{Date: key}
			buckets[key] = row
		}
		row.Total++
		switch ev.Status {
		case model.EventStatusConfirmed:
			row.Confirmed++
		case model.EventStatusCancelled:
			row.Cancelled++
		}
	}

	days := int(rng.End.Sub(rng.Start).Hours()/24) + 1
	rows := make([]DaySummary, 0, days)
	for d := rng.Start; !d.After(rng.End); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayKey)
		if row, ok := buckets[key]; ok {
			rows = append(rows, *row)
			continue
		}
		rows = append(rows, DaySummary{Date: key})
	}
	return rows
}
