package refdata

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/medagenda/agenda-api/internal/model"
	"github.com/medagenda/agenda-api/pkg/logger"
	"github.com/medagenda/agenda-api/pkg/metrics"
)

var (
	metricsOnce sync.Once
	shared      *metrics.Metrics
)

func sharedMetrics() *metrics.Metrics {
	metricsOnce.Do(func() {
		shared = metrics.NewMetrics("agenda_test", "refdata")
	})
	return shared
}

type fakeFetcher struct {
	calendars []model.Calendar
	patients  []model.Patient
	sitesErr  error
	allErr    error
	calls     int
}

func (f *fakeFetcher) ListCalendars(context.Context) ([]model.Calendar, error) {
	f.calls++
	if f.allErr != nil {
		return nil, f.allErr
	}
	return f.calendars, nil
}

func (f *fakeFetcher) ListSites(context.Context) ([]model.Site, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	if f.sitesErr != nil {
		return nil, f.sitesErr
	}
	return []model.Site{{ID: "S1", Name: "Main"}}, nil
}

func (f *fakeFetcher) ListHPs(context.Context) ([]model.HealthProfessional, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	return []model.HealthProfessional{{ID: "HP1", LastName: "Adams"}}, nil
}

func (f *fakeFetcher) ListPatients(context.Context) ([]model.Patient, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	return f.patients, nil
}

func (f *fakeFetcher) ListMotives(context.Context) ([]model.Motive, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	return nil, nil
}

func TestRefreshBuildsIndex(t *testing.T) {
	fetcher := &fakeFetcher{
		calendars: []model.Calendar{{ID: "C1", SiteID: "S1", HPID: "HP1"}},
		patients:  []model.Patient{{ID: "1", ExternalID: "EXT1"}},
	}
	svc := NewService(fetcher, time.Minute, logger.NewLogger(nil), sharedMetrics())

	snap := svc.Refresh(context.Background())
	assert.True(t, snap.HasCalendars())
	assert.Contains(t, snap.Index.CalendarByID, "C1")
	assert.Contains(t, snap.Index.PatientByExternalID, "EXT1")
}

func TestRefreshProceedsOnPartialFailure(t *testing.T) {
	fetcher := &fakeFetcher{
		calendars: []model.Calendar{{ID: "C1"}},
		sitesErr:  fmt.Errorf("boom"),
	}
	svc := NewService(fetcher, time.Minute, logger.NewLogger(nil), sharedMetrics())

	snap := svc.Refresh(context.Background())
	// failed list stays empty, everything else is kept
	assert.Empty(t, snap.Sites)
	assert.Len(t, snap.Calendars, 1)
	assert.Len(t, snap.HPs, 1)
}

func TestTotalFailureIsNotCached(t *testing.T) {
	fetcher := &fakeFetcher{
		calendars: []model.Calendar{{ID: "C1"}},
		allErr:    fmt.Errorf("platform down"),
	}
	svc := NewService(fetcher, time.Minute, logger.NewLogger(nil), sharedMetrics())

	snap := svc.Load(context.Background())
	assert.False(t, snap.HasCalendars())

	// the platform comes back; the next load must refetch instead of
	// serving the empty snapshot until the TTL expires
	fetcher.allErr = nil
	snap = svc.Load(context.Background())
	assert.True(t, snap.HasCalendars())
	assert.Equal(t, 2, fetcher.calls)
}

func TestLoadUsesCache(t *testing.T) {
	fetcher := &fakeFetcher{calendars: []model.Calendar{{ID: "C1"}}}
	svc := NewService(fetcher, time.Minute, logger.NewLogger(nil), sharedMetrics())

	svc.Load(context.Background())
	svc.Load(context.Background())
	assert.Equal(t, 1, fetcher.calls)
}
