package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/medagenda/agenda-api/internal/backend"
	"github.com/medagenda/agenda-api/internal/config"
	"github.com/medagenda/agenda-api/internal/handler"
	agendaHandler "github.com/medagenda/agenda-api/internal/handler/agenda"
	"github.com/medagenda/agenda-api/internal/middleware"
	"github.com/medagenda/agenda-api/internal/router"
	"github.com/medagenda/agenda-api/internal/service/agenda"
	"github.com/medagenda/agenda-api/internal/service/refdata"
	"github.com/medagenda/agenda-api/internal/session"
	"github.com/medagenda/agenda-api/pkg/logger"
	"github.com/medagenda/agenda-api/pkg/metrics"
	"github.com/medagenda/agenda-api/pkg/validator"
)

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

	m := metrics.NewMetrics("medagenda", "agenda_api")

	client := backend.NewClient(backend.Config{
		BaseURL:     cfg.Backend.BaseURL,
		Token:       cfg.Backend.Token,
		Timeout:     cfg.Backend.Timeout,
		PageSize:    cfg.Backend.PageSize,
		MaxFailures: cfg.Backend.BreakerMaxFail,
	}, log, m)

	refdataSvc := refdata.NewService(client, cfg.Refdata.TTL, log, m)

	store := newSessionStore(cfg, log)

	agendaSvc := agenda.NewService(client, refdataSvc, store, log, m)

	h := handler.NewHandler(store)
	agendaH := agendaHandler.NewHandler(agendaSvc)

	if err := validator.RegisterCustom(); err != nil {
		log.Fatal(err, "failed to register request validators")
	}

	r := router.NewRouter(agendaH, h, router.Config{
		RateLimit:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:      cfg.RateLimit.Burst,
		RequestTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		CORSConfig:     middleware.DefaultCORSConfig(),
		MetricsPrefix:  "agenda_api",
	})
	r.Setup()

	// Warm the reference cache so the first session does not pay the
	// full fan-out latency.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if snap := refdataSvc.Load(warmCtx); !snap.HasCalendars() {
		log.Warn(nil, "initial reference data load returned no calendars, will retry on demand")
	}
	warmCancel()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}

// newSessionStore prefers Redis so sessions survive restarts and load
// balancing; an in-process store keeps local development simple.
func newSessionStore(cfg *config.Config, log *logger.Logger) session.Store {
	if cfg.Redis.URL != "" {
		store, err := session.NewRedisStore(session.RedisConfig{
			URL:          cfg.Redis.URL,
			TTL:          cfg.Redis.SessionTTL,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		if err == nil {
			log.Info("using Redis session store")
			return store
		}
		log.Warn(err, "Redis unavailable, falling back to in-memory sessions")
	}
	return session.NewMemoryStore(cfg.Redis.SessionTTL)
}
