package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medagenda/agenda-api/internal/session"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
	"github.com/medagenda/agenda-api/pkg/httputil"
)

// Handler serves the operational endpoints: liveness, readiness, metrics.
type Handler struct {
	store session.Store
}

func NewHandler(store session.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	httputil.RespondWithSuccess(c, gin.H{"status": "alive"})
}

// ReadinessCheck verifies the session store is reachable; the platform API is
// deliberately excluded since the service degrades to empty views without it.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		httputil.RespondWithError(c, apperrors.Unavailable("session store unavailable", err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"status": "ready"})
}

func (h *Handler) MetricsHandler(c *gin.Context) {
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}
