// Package agenda orchestrates the view model for console sessions: it owns
// the session lifecycle, runs the range/filter pipeline against platform
// data and produces the rendered snapshot, summary and export payloads.
package agenda

import (
	"context"
	"fmt"
	"time"

	core "github.com/medagenda/agenda-api/internal/agenda"
	"github.com/medagenda/agenda-api/internal/model"
	"github.com/medagenda/agenda-api/internal/service/refdata"
	"github.com/medagenda/agenda-api/internal/session"
	"github.com/medagenda/agenda-api/pkg/logger"
	"github.com/medagenda/agenda-api/pkg/metrics"
)

type NavAction string

const (
	NavToday NavAction = "today"
	NavPrev  NavAction = "prev"
	NavNext  NavAction = "next"
)

// EventLister is the slice of the platform client this service needs.
type EventLister interface {
	ListEvents(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error)
}

type Service struct {
	events  EventLister
	refdata *refdata.Service
	store   session.Store
	logger  *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(events EventLister, refdata *refdata.Service, store session.Store, logger *logger.Logger, metrics *metrics.Metrics) *Service {
	return &Service{
		events:  events,
		refdata: refdata,
		store:   store,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Session pairs a store id with its state for responses.
type Session struct {
	ID    string               `json:"id"`
	State model.ViewModelState `json:"state"`
}

// EventView is a CalendarEvent joined with its reference entities for
// rendering.
type EventView struct {
	model.CalendarEvent
	CalendarLabel string `json:"calendar_label,omitempty"`
	SiteName      string `json:"site_name,omitempty"`
	HPName        string `json:"hp_name,omitempty"`
	PatientName   string `json:"patient_name,omitempty"`
	MotiveLabel   string `json:"motive_label,omitempty"`
	Color         string `json:"color"`
}

// Snapshot is everything the console needs to render the current view.
type Snapshot struct {
	View   model.ViewMode `json:"view"`
	Range  model.Range    `json:"range"`
	Label  string         `json:"label"`
	Events []EventView    `json:"events"`
}

// CreateSession starts a console session pivoted on today in week view, with
// every known calendar subscribed.
func (s *Service) CreateSession(ctx context.Context) (*Session, error) {
	ref := s.refdata.Load(ctx)
	visible := make([]string, 0, len(ref.Calendars))
	for _, cal := range ref.Calendars {
		visible = append(visible, cal.ID)
	}

	state := model.NewViewModelState(s.now(), visible)
	id, err := s.store.Create(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.metrics.SessionsCreated.Inc()
	s.metrics.SessionsActive.Inc()
	return &Session{ID: id, State: state}, nil
}

func (s *Service) GetSession(ctx context.Context, id string) (*Session, error) {
	state, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, State: state}, nil
}

func (s *Service) DeleteSession(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.SessionsActive.Dec()
	return nil
}

// Navigate applies a navigation action to the session's pivot.
func (s *Service) Navigate(ctx context.Context, id string, action NavAction) (*Session, error) {
	return s.mutate(ctx, id, func(state *model.ViewModelState) error {
		switch action {
		case NavToday:
			core.Today(state, s.now())
		case NavPrev:
			core.Prev(state)
		case NavNext:
			core.Next(state)
		default:
			return fmt.Errorf("unknown navigation action %q", action)
		}
		return nil
	})
}

// SetView switches granularity without moving the pivot.
func (s *Service) SetView(ctx context.Context, id string, view model.ViewMode) (*Session, error) {
	return s.mutate(ctx, id, func(state *model.ViewModelState) error {
		if !view.Valid() {
			return fmt.Errorf("unknown view mode %q", view)
		}
		core.SetView(state, view)
		return nil
	})
}

// SetCriteria replaces the filter criteria sets.
func (s *Service) SetCriteria(ctx context.Context, id string, criteria model.Criteria) (*Session, error) {
	return s.mutate(ctx, id, func(state *model.ViewModelState) error {
		state.Criteria = criteria
		return nil
	})
}

// SetVisibleCalendars replaces the subscribed-calendars layer.
func (s *Service) SetVisibleCalendars(ctx context.Context, id string, calendarIDs []string) (*Session, error) {
	return s.mutate(ctx, id, func(state *model.ViewModelState) error {
		state.VisibleCalendarIDs = calendarIDs
		return nil
	})
}

func (s *Service) mutate(ctx context.Context, id string, fn func(*model.ViewModelState) error) (*Session, error) {
	state, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(&state); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, id, state); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return &Session{ID: id, State: state}, nil
}

// Snapshot resolves the window, fetches events for it and runs the filter
// pipeline. The event fetch never fires before calendars are available, and
// a failed fetch renders an empty list rather than stale data.
func (s *Service) Snapshot(ctx context.Context, id string) (*Snapshot, error) {
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
			s.logger.Error(err, "events fetch failed, rendering empty window", "session_id", id)
			events = nil
		}
	}

	visible := core.FilterEvents(events, ref.Index, state.VisibleCalendarIDs, state.Criteria)

	return &Snapshot{
		View:   state.View,
		Range:  rng,
		Label:  core.FormatLabel(rng, state.View),
		Events: s.decorate(visible, ref),
	}, nil
}

func (s *Service) decorate(events []model.CalendarEvent, ref refdata.Snapshot) []EventView {
	siteByID := make(map[string]model.Site, len(ref.Sites))
	for _, site := range ref.Sites {
		siteByID[site.ID] = site
	}
	hpByID := make(map[string]model.HealthProfessional, len(ref.HPs))
	for _, hp := range ref.HPs {
		hpByID[hp.ID] = hp
	}
	motiveByID := make(map[string]model.Motive, len(ref.Motives))
	for _, m := range ref.Motives {
		motiveByID[m.ID] = m
	}

	out := make([]EventView, 0, len(events))
	for _, ev := range events {
		cal := ref.Index.CalendarByID[ev.CalendarID]
		motive := motiveByID[ev.MotiveID]

		view := EventView{
			CalendarEvent: ev,
			CalendarLabel: cal.Label,
			SiteName:      siteByID[cal.SiteID].Name,
			HPName:        hpByID[cal.HPID].DisplayName(),
			MotiveLabel:   motive.Label,
			Color:         eventColor(cal, motive),
		}
		if p, ok := ref.Index.PatientByID[ev.PatientExID]; ok {
			view.PatientName = p.DisplayName()
		} else if p, ok := ref.Index.PatientByExternalID[ev.PatientExID]; ok {
			view.PatientName = p.DisplayName()
		}
		out = append(out, view)
	}
	return out
}
