package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classdeck/classdeck-api/internal/models"
	"github.com/classdeck/classdeck-api/internal/service"
	appErrors "github.com/classdeck/classdeck-api/pkg/errors"
	"github.com/classdeck/classdeck-api/pkg/response"
)

type scheduleService interface {
	ClassifyDate(ctx context.Context, date string) models.DayClassification
	DayScheduleFor(ctx context.Context, date, room string, override *models.ScheduleType) service.DaySchedule
}

// ScheduleHandler exposes day classification and the rendered bell
// schedule for the teacher's room.
type ScheduleHandler struct {
	service  scheduleService
	settings boardSettingsLoader
}

// NewScheduleHandler creates a new handler.
func NewScheduleHandler(svc scheduleService, settings boardSettingsLoader) *ScheduleHandler {
	return &ScheduleHandler{service: svc, settings: settings}
}

// Day godoc
// @Summary Day schedule
// @Description Classifies the date's calendar events and renders the room's timeline
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Param date query string true "ISO date (YYYY-MM-DD)"
// @Param room query string false "Room number override"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) Day(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date query parameter is required"))
		return
	}

	room := c.Query("room")
	if room == "" {
		if settings, ok := h.settings.Load(c.Request.Context(), session.TeacherID); ok {
			room = settings.RoomNumber
		}
	}

	day := h.service.DayScheduleFor(c.Request.Context(), date, room, nil)
	response.JSON(c, http.StatusOK, day, nil)
}

// Classify godoc
// @Summary Classify a date
// @Description Returns the schedule type and remaining school events for a date
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Param date query string true "ISO date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule/classify [get]
func (h *ScheduleHandler) Classify(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date query parameter is required"))
		return
	}
	response.JSON(c, http.StatusOK, h.service.ClassifyDate(c.Request.Context(), date), nil)
}
