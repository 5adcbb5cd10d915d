package agenda

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medagenda/agenda-api/internal/model"
	agendaService "github.com/medagenda/agenda-api/internal/service/agenda"
	"github.com/medagenda/agenda-api/internal/session"
	apperrors "github.com/medagenda/agenda-api/pkg/errors"
	"github.com/medagenda/agenda-api/pkg/httputil"
)

type Handler struct {
	service *agendaService.Service
}

func NewHandler(service *agendaService.Service) *Handler {
	return &Handler{service: service}
}

type navigateRequest struct {
	Action string `json:"action" binding:"required,navaction"`
}

type viewRequest struct {
	View string `json:"view" binding:"required,viewmode"`
}

type criteriaRequest struct {
	SiteIDs    []string `json:"site_ids"`
	HPIDs      []string `json:"hp_ids"`
	PatientIDs []string `json:"patient_ids"`
	Statuses   []string `json:"statuses" binding:"omitempty,dive,eventstatus"`
	Types      []string `json:"types" binding:"omitempty,dive,eventtype"`
}

type calendarsRequest struct {
	VisibleCalendarIDs []string `json:"visible_calendar_ids" binding:"required"`
}

func (h *Handler) CreateSession(c *gin.Context) {
	sess, err := h.service.CreateSession(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithCreated(c, sess)
}

func (h *Handler) GetSession(c *gin.Context) {
	sess, err := h.service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sess)
}

func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.service.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, nil)
}

func (h *Handler) Navigate(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	sess, err := h.service.Navigate(c.Request.Context(), c.Param("id"), agendaService.NavAction(req.Action))
	if err != nil {
		h.respondError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sess)
}

func (h *Handler) SetView(c *gin.Context) {
	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	sess, err := h.service.SetView(c.Request.Context(), c.Param("id"), model.ViewMode(req.View))
	if err != nil {
		h.respondError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sess)
}

func (h *Handler) SetFilters(c *gin.Context) {
	var req criteriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	criteria := model.Criteria{
		SiteIDs:    req.SiteIDs,
		HPIDs:      req.HPIDs,
		PatientIDs: req.PatientIDs,
	}
	for _, s := range req.Statuses {
		criteria.Statuses = append(criteria.Statuses, model.EventStatus(s))
	}
	for _, t := range req.Types {
		criteria.Types = append(criteria.Types, model.EventType(t))
	}

	sess, err := h.service.SetCriteria(c.Request.Context(), c.Param("id"), criteria)
	if err != nil {
		h.respondError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sess)
}

func (h *Handler) SetVisibleCalendars(c *gin.Context) {
	var req calendarsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	sess, err := h.service.SetVisibleCalendars(c.Request.Context(), c.Param("id"), req.VisibleCalendarIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sess)
}

func (h *Handler) Events(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, snap)
}

func (h *Handler) Summary(c *gin.Context) {
	rows, err := h.service.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) ExportICS(c *gin.Context) {
	feed, err := h.service.ExportICS(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="agenda.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

func (h *Handler) respondError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrNotFound) {
		httputil.RespondWithError(c, apperrors.NotFound("session", err))
		return
	}
	httputil.RespondWithError(c, apperrors.Internal(err))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sessions := r.Group("/agenda/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:id", h.GetSession)
		sessions.DELETE("/:id", h.DeleteSession)
		sessions.POST("/:id/navigate", h.Navigate)
		sessions.PUT("/:id/view", h.SetView)
		sessions.PUT("/:id/filters", h.SetFilters)
		sessions.PUT("/:id/calendars", h.SetVisibleCalendars)
		sessions.GET("/:id/events", h.Events)
		sessions.GET("/:id/summary", h.Summary)
		sessions.GET("/:id/export.ics", h.ExportICS)
	}
}
