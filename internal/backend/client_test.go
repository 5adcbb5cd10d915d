package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medagenda/agenda-api/pkg/logger"
	"github.com/medagenda/agenda-api/pkg/metrics"
)

var (
	testMetricsOnce sync.Once
	testMetrics     *metrics.Metrics
)

// promauto registers in the default registry, so the package shares one set.
func sharedMetrics() *metrics.Metrics {
	testMetricsOnce.Do(func() {
		testMetrics = metrics.NewMetrics("agenda_test", "backend")
	})
	return testMetrics
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(Config{
		BaseURL: srv.URL,
		Token:   "test-token",
		Timeout: 2 * time.Second,
	}, logger.NewLogger(nil), sharedMetrics())
	return c, srv
}

func TestNormalizeEnvelopeElements(t *testing.T) {
	body := []byte(`{"elements":[{"id":"1"}],"totalCount":1,"totalPages":1,"page":1}`)

	items, meta, err := normalizeEnvelope(body)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(items))
	assert.Equal(t, 1, meta.TotalCount)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestNormalizeEnvelopeDataVariant(t *testing.T) {
	body := []byte(`{"data":[{"id":"1"},{"id":"2"}],"total_count":2,"total_pages":1,"page":1}`)

	items, meta, err := normalizeEnvelope(body)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"},{"id":"2"}]`, string(items))
	assert.Equal(t, 2, meta.TotalCount)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestNormalizeEnvelopeMissingItems(t *testing.T) {
	_, _, err := normalizeEnvelope([]byte(`{"totalCount":0}`))
	assert.Error(t, err)
}

func TestListCalendars(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"elements":[{"id":"C1","siteId":"S1","hpId":"HP1","label":"Dr. Adams","color":"#3788d8"}],"totalCount":1,"totalPages":1,"page":1}`)
	}))

	cals, err := c.ListCalendars(context.Background())
	require.NoError(t, err)
	require.Len(t, cals, 1)
	assert.Equal(t, "C1", cals[0].ID)
	assert.Equal(t, "S1", cals[0].SiteID)
	assert.Equal(t, "HP1", cals[0].HPID)
}

func TestListEventsQueryAndMapping(t *testing.T) {
	from := time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 11, 15, 23, 59, 59, 0, time.UTC)

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, from.Format(time.RFC3339), r.URL.Query().Get("from"))
		assert.Equal(t, to.Format(time.RFC3339), r.URL.Query().Get("to"))
		fmt.Fprint(w, `{"elements":[
			{"id":"e1","title":"Consult","status":"CONFIRMED","type":"APPOINTMENT","calendarId":"C1","patientExId":"EXT1","startDate":"2025-11-10T09:00:00Z","endDate":"2025-11-10T09:30:00Z"},
			{"id":"bad","title":"Broken","status":"CONFIRMED","type":"APPOINTMENT","calendarId":"C1","startDate":"2025-11-10T10:00:00Z","endDate":"2025-11-10T10:00:00Z"}
		],"totalCount":2,"totalPages":1,"page":1}`)
	}))

	events, err := c.ListEvents(context.Background(), from, to)
	require.NoError(t, err)
	// the zero-duration event is dropped at the boundary
	require.Len(t, events, 1)
	assert.Equal(t, "e1", events[0].ID)
	assert.Equal(t, "EXT1", events[0].PatientExID)
}

func TestListAllWalksPages(t *testing.T) {
	var pages []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pages = append(pages, page)
		fmt.Fprintf(w, `{"elements":[{"id":"P%s"}],"totalCount":3,"totalPages":3,"page":%s}`, page, page)
	}))

	patients, err := c.ListPatients(context.Background())
	require.NoError(t, err)
	assert.Len(t, patients, 3)
	assert.Equal(t, []string{"1", "2", "3"}, pages)
}

func TestListUpstreamError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.ListSites(context.Background())
	assert.Error(t, err)
}
