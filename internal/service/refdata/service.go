// Package refdata loads and caches the reference entities the agenda view
// joins against: sites, health professionals, patients, calendars, motives.
package refdata

import (
	"context"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/medagenda/agenda-api/internal/agenda"
	"github.com/medagenda/agenda-api/internal/model"
	"github.com/medagenda/agenda-api/pkg/logger"
	"github.com/medagenda/agenda-api/pkg/metrics"
)

const cacheKey = "refdata"

// Fetcher is the slice of the platform client this service needs.
type Fetcher interface {
	ListCalendars(ctx context.Context) ([]model.Calendar, error)
	ListSites(ctx context.Context) ([]model.Site, error)
	ListHPs(ctx context.Context) ([]model.HealthProfessional, error)
	ListPatients(ctx context.Context) ([]model.Patient, error)
	ListMotives(ctx context.Context) ([]model.Motive, error)
}

// Snapshot is one consistent load of reference data plus the lookup index
// built from it. The index is rebuilt here, once per load, not per filter
// pass.
type Snapshot struct {
	Calendars []model.Calendar
	Sites     []model.Site
	HPs       []model.HealthProfessional
	Patients  []model.Patient
	Motives   []model.Motive
	Index     agenda.Index
	LoadedAt  time.Time
}

// HasCalendars gates event fetching: the filter join is meaningless until
// calendars have loaded.
func (s Snapshot) HasCalendars() bool {
	return len(s.Calendars) > 0
}

type Service struct {
	fetcher Fetcher
	cache   *gocache.Cache
	ttl     time.Duration
	logger  *logger.Logger
	metrics *metrics.Metrics
	mu      sync.Mutex
}

func NewService(fetcher Fetcher, ttl time.Duration, logger *logger.Logger, metrics *metrics.Metrics) *Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		fetcher: fetcher,
		cache:   gocache.New(ttl, 10*time.Minute),
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

// Load returns the cached snapshot, refreshing it when expired.
func (s *Service) Load(ctx context.Context) Snapshot {
	if v, ok := s.cache.Get(cacheKey); ok {
		return v.(Snapshot)
	}
	return s.Refresh(ctx)
}

// Refresh issues the joint fetch for all five reference lists concurrently
// and merges whatever succeeded. A failed list is logged and left empty;
// absent entities simply fail to resolve downstream, they never crash the
// filter pipeline.
func (s *Service) Refresh(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		wg   sync.WaitGroup
		snap Snapshot
		errs = make([]error, 5)
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		snap.Calendars, errs[0] = s.fetcher.ListCalendars(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.Sites, errs[1] = s.fetcher.ListSites(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.HPs, errs[2] = s.fetcher.ListHPs(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.Patients, errs[3] = s.fetcher.ListPatients(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.Motives, errs[4] = s.fetcher.ListMotives(ctx)
	}()
	wg.Wait()

	failed := 0
	names := [5]string{"calendars", "sites", "hps", "patients", "motives"}
	for i, err := range errs {
		if err != nil {
			failed++
			s.logger.Error(err, "reference fetch failed", "resource", names[i])
		}
	}

	snap.Index = agenda.BuildIndex(snap.Calendars, snap.Patients)
	snap.LoadedAt = time.Now()

	status := "ok"
	if failed == len(errs) {
		status = "failed"
	} else if failed > 0 {
		status = "partial"
	}
	s.metrics.RefdataRefreshes.WithLabelValues(status).Inc()
	if failed < len(errs) {
		s.metrics.RefdataLastRefresh.SetToCurrentTime()
	}
	s.metrics.RefdataEntities.WithLabelValues("calendars").Set(float64(len(snap.Calendars)))
	s.metrics.RefdataEntities.WithLabelValues("sites").Set(float64(len(snap.Sites)))
	s.metrics.RefdataEntities.WithLabelValues("hps").Set(float64(len(snap.HPs)))
	s.metrics.RefdataEntities.WithLabelValues("patients").Set(float64(len(snap.Patients)))
	s.metrics.RefdataEntities.WithLabelValues("motives").Set(float64(len(snap.Motives)))

	// A refresh where every list failed is not cached: the next Load retries
	// immediately instead of pinning empty views for the full TTL while the
	// platform recovers.
	if failed < len(errs) {
		s.cache.Set(cacheKey, snap, s.ttl)
	}
	s.logger.Info("reference data refreshed",
		"calendars", strconv.Itoa(len(snap.Calendars)),
		"patients", strconv.Itoa(len(snap.Patients)),
		"failed_lists", strconv.Itoa(failed))
	return snap
}
