package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/medagenda/agenda-api/internal/model"
	"github.com/medagenda/agenda-api/pkg/circuitbreaker"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
	"github.com/medagenda/agenda-api/pkg/logger"
	"github.com/medagenda/agenda-api/pkg/metrics"
)

const defaultPageSize = 200

// maxPages caps pagination walks in case the platform misreports totalPages.
const maxPages = 100

type Config struct {
	BaseURL     string
	Token       string
	Timeout     time.Duration
	PageSize    int
	MaxFailures int
}

type Client struct {
	http    *http.Client
	cfg     Config
	cb      *circuitbreaker.CircuitBreaker
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewClient(cfg Config, logger *logger.Logger, metrics *metrics.Metrics) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}

	cb := circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
		Name:        "clinic-platform",
		MaxFailures: cfg.MaxFailures,
		Timeout:     30 * time.Second,
	})

	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
		cb:      cb,
		logger:  logger,
		metrics: metrics,
	}
}

func (c *Client) ListCalendars(ctx context.Context) ([]model.Calendar, error) {
	raw, err := listAll[wireCalendar](ctx, c, "calendars", nil)
	if err != nil {
		return nil, err
	}
	out := make([]model.Calendar, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toModel())
	}
	return out, nil
}

func (c *Client) ListSites(ctx context.Context) ([]model.Site, error) {
	raw, err := listAll[wireSite](ctx, c, "sites", nil)
	if err != nil {
		return nil, err
	}
	out := make([]model.Site, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toModel())
	}
	return out, nil
}

func (c *Client) ListHPs(ctx context.Context) ([]model.HealthProfessional, error) {
	raw, err := listAll[wireHP](ctx, c, "hps", nil)
	if err != nil {
		return nil, err
	}
	out := make([]model.HealthProfessional, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toModel())
	}
	return out, nil
}

func (c *Client) ListPatients(ctx context.Context) ([]model.Patient, error) {
	raw, err := listAll[wirePatient](ctx, c, "patients", nil)
	if err != nil {
		return nil, err
	}
	out := make([]model.Patient, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toModel())
	}
	return out, nil
}

func (c *Client) ListMotives(ctx context.Context) ([]model.Motive, error) {
	raw, err := listAll[wireMotive](ctx, c, "motives", nil)
	if err != nil {
		return nil, err
	}
	out := make([]model.Motive, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toModel())
	}
	return out, nil
}

// ListEvents fetches events overlapping [from, to]. Events with an invalid
// time range or a missing calendar id are dropped here; events with an
// unrecognized status or type are kept (the filter excludes them) but logged
// so bad data is visible instead of silently vanishing.
func (c *Client) ListEvents(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error) {
	params := url.Values{}
	params.Set("from", from.Format(time.RFC3339))
	params.Set("to", to.Format(time.RFC3339))

	raw, err := listAll[wireEvent](ctx, c, "events", params)
	if err != nil {
		return nil, err
	}

	out := make([]model.CalendarEvent, 0, len(raw))
	for _, w := range raw {
		ev := w.toModel()
		if ev.CalendarID == "" || !ev.End.After(ev.Start) {
			c.metrics.DroppedEvents.Inc()
			c.logger.Warn(nil, "dropping malformed event", "event_id", ev.ID)
			continue
		}
		if !ev.Status.Valid() {
			c.metrics.UnrecognizedEnums.WithLabelValues("status").Inc()
			c.logger.Warn(nil, "event has unrecognized status", "event_id", ev.ID, "status", string(ev.Status))
		}
		if !ev.Type.Valid() {
			c.metrics.UnrecognizedEnums.WithLabelValues("type").Inc()
			c.logger.Warn(nil, "event has unrecognized type", "event_id", ev.ID, "type", string(ev.Type))
		}
		out = append(out, ev)
	}
	return out, nil
}

// listAll walks every page of a list endpoint and concatenates the items.
func listAll[T any](ctx context.Context, c *Client, resource string, params url.Values) ([]T, error) {
	var all []T
	for page := 1; page <= maxPages; page++ {
		body, err := c.get(ctx, resource, params, page)
		if err != nil {
			return nil, err
		}

		items, meta, err := normalizeEnvelope(body)
		if err != nil {
			return nil, fmt.Errorf("%s page %d: %w", resource, page, err)
		}

		var chunk []T
		if err := json.Unmarshal(items, &chunk); err != nil {
			return nil, fmt.Errorf("failed to decode %s page %d: %w", resource, page, err)
		}
		all = append(all, chunk...)

		if meta.TotalPages == 0 || page >= meta.TotalPages {
			break
		}
	}
	return all, nil
}

func (c *Client) get(ctx context.Context, resource string, params url.Values, page int) ([]byte, error) {
	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(c.cfg.PageSize))

	endpoint := fmt.Sprintf("%s/%s?%s", c.cfg.BaseURL, resource, q.Encode())

	var body []byte
	start := time.Now()
	err := c.cb.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if c.cfg.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s returned status %d", resource, resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})

	c.metrics.UpstreamLatency.WithLabelValues(resource).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(resource, "error").Inc()
		c.metrics.UpstreamFailures.WithLabelValues(resource).Inc()
		return nil, apperrors.Upstream("fetch "+resource, err)
	}
	c.metrics.UpstreamRequests.WithLabelValues(resource, "ok").Inc()
	return body, nil
}
