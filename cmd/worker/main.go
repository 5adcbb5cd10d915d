package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/medagenda/agenda-api/internal/backend"
	"github.com/medagenda/agenda-api/internal/config"
	"github.com/medagenda/agenda-api/internal/service/refdata"
	"github.com/medagenda/agenda-api/pkg/logger"
	"github.com/medagenda/agenda-api/pkg/metrics"
)

var (
	warmRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refdata_warm_runs_total",
		Help: "The total number of reference data warm-up runs",
	})
	warmFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refdata_warm_failures_total",
		Help: "The total number of warm-up runs that produced no calendars",
	})
	warmDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "refdata_warm_duration_seconds",
		Help:    "Time spent refreshing reference data",
		Buckets: prometheus.DefBuckets,
	})
)

// The warmer keeps the shared reference cache hot so interactive
// sessions rarely block on the five-way platform fan-out.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	m := metrics.NewMetrics("medagenda", "agenda_worker")

	client := backend.NewClient(backend.Config{
		BaseURL:     cfg.Backend.BaseURL,
		Token:       cfg.Backend.Token,
		Timeout:     cfg.Backend.Timeout,
		PageSize:    cfg.Backend.PageSize,
		MaxFailures: cfg.Backend.BreakerMaxFail,
	}, log, m)

	refdataSvc := refdata.NewService(client, cfg.Refdata.TTL, log, m)

	warm := func() {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		snap := refdataSvc.Refresh(ctx)

		warmRuns.Inc()
		warmDuration.Observe(time.Since(start).Seconds())
		if !snap.HasCalendars() {
			warmFailures.Inc()
			log.Warn(nil, "warm-up run returned no calendars")
			return
		}
		log.Info("reference data warmed",
			"calendars", len(snap.Calendars),
			"patients", len(snap.Patients),
			"duration", time.Since(start).String())
	}

	warm()

	c := cron.New()
	schedule := "*/4 * * * *"
	if _, err := c.AddFunc(schedule, warm); err != nil {
		log.Fatal(err, "failed to schedule warm-up job")
	}
	c.Start()
	log.Info("warmer started", "schedule", schedule)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	})

	srv := &http.Server{Addr: ":9090", Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start metrics server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down warmer...")

	cronCtx := c.Stop()
	<-cronCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "metrics server forced to shutdown")
	}
}
