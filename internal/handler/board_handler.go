package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classdeck/classdeck-api/internal/dto"
	"github.com/classdeck/classdeck-api/internal/models"
	"github.com/classdeck/classdeck-api/internal/service"
	appErrors "github.com/classdeck/classdeck-api/pkg/errors"
	"github.com/classdeck/classdeck-api/pkg/response"
)

type boardSettingsLoader interface {
	Load(ctx context.Context, teacherID string) (*models.TeacherSettings, bool)
}

type dayScheduleResolver interface {
	DayScheduleFor(ctx context.Context, date, room string, override *models.ScheduleType) service.DaySchedule
}

// BoardHandler exposes the session's editable board. Every edit endpoint
// mutates the in-memory state and relies on the debounced autosave; the
// flush endpoint forces a synchronous write.
type BoardHandler struct {
	sync      *service.SyncManager
	schedules dayScheduleResolver
	settings  boardSettingsLoader
}

// NewBoardHandler creates a new handler.
func NewBoardHandler(sync *service.SyncManager, schedules dayScheduleResolver, settings boardSettingsLoader) *BoardHandler {
	return &BoardHandler{sync: sync, schedules: schedules, settings: settings}
}

// boardStateResponse pairs the board snapshot with the rendered day
// schedule for the teacher's room.
type boardStateResponse struct {
	Sync     service.SyncSnapshot `json:"sync"`
	Schedule service.DaySchedule  `json:"schedule"`
}

func (h *BoardHandler) stateResponse(c *gin.Context, session *models.Session, snapshot service.SyncSnapshot) boardStateResponse {
	room := ""
	if settings, ok := h.settings.Load(c.Request.Context(), session.TeacherID); ok {
		room = settings.RoomNumber
	}
	var override *models.ScheduleType
	if snapshot.Board != nil {
		override = snapshot.Board.ScheduleOverride
	}
	day := h.schedules.DayScheduleFor(c.Request.Context(), snapshot.Selection.Date, room, override)
	day.OtherEvents = snapshot.OtherEvents
	return boardStateResponse{Sync: snapshot, Schedule: day}
}

// Select godoc
// @Summary Switch the selected day and class
// @Description Flushes pending edits, then loads the board for the new selection
// @Tags Board
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SelectBoardRequest true "Selection"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /board/selection [put]
func (h *BoardHandler) Select(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SelectBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid selection payload"))
		return
	}

	synchronizer := h.sync.ForSession(session.ID, session.TeacherID)
	snapshot := synchronizer.Select(c.Request.Context(), req.Date, req.ClassID)
	response.JSON(c, http.StatusOK, h.stateResponse(c, session, snapshot), nil)
}

// State godoc
// @Summary Current board state
// @Tags Board
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /board [get]
func (h *BoardHandler) State(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	synchronizer := h.sync.ForSession(session.ID, session.TeacherID)
	response.JSON(c, http.StatusOK, h.stateResponse(c, session, synchronizer.Snapshot()), nil)
}

// EditSection godoc
// @Summary Replace one section's text
// @Tags Board
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Section key"
// @Param payload body dto.EditSectionRequest true "Section text"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /board/sections/{key} [put]
func (h *BoardHandler) EditSection(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.EditSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid section payload"))
		return
	}

	synchronizer := h.sync.ForSession(session.ID, session.TeacherID)
	if err := synchronizer.EditSection(models.SectionKey(c.Param("key")), req.Text); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.stateResponse(c, session, synchronizer.Snapshot()), nil)
}

// AttachMedia godoc
// @Summary Attach media to a section
// @Description Validates the pasted URL; Slides URLs must contain a presentation id
// @Tags Board
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Section key"
// @Param payload body dto.AttachMediaRequest true "Media payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /board/sections/{key}/media [put]
func (h *BoardHandler) AttachMedia(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.AttachMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid media payload"))
		return
	}

	synchronizer := h.sync.ForSession(session.ID, session.TeacherID)
	if err := synchronizer.AttachMedia(models.SectionKey(c.Param("key")), req.Kind, req.URL, req.Title); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.stateResponse(c, session, synchronizer.Snapshot()), nil)
}

// RemoveMedia godoc
// @Summary Remove a section's media
// @Description Clears the media, revealing the section's stored text
// @Tags Board
// @Produce json
// @Security BearerAuth
// @Param key path string true "Section key"
// @Success 200 {object} response.Envelope
// @Router /board/sections/{key}/media [delete]
func (h *BoardHandler) RemoveMedia(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	synchronizer := h.sync.ForSession(session.ID, session.TeacherID)
	if err := synchronizer.RemoveMedia(models.SectionKey(c.Param("key"))); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.stateResponse(c, session, synchronizer.Snapshot()), nil)
}

// UpdateLayout godoc
// @Summary Update the grid layout weights
// @Tags Board
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.GridWeights true "Grid weights"
// @Success 200 {object} response.Envelope
// @Router /board/layout [put]
func (h *BoardHandler) UpdateLayout(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.GridWeights
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid layout payload"))
		return
	}

	synchronizer := h.sync.ForSession(session.ID, session.TeacherID)
	if err := synchronizer.SetLayout(req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.stateResponse(c, session, synchronizer.Snapshot()), nil)
}

// UpdateTheme godoc
// @Summary Switch the board theme
// @Tags Board
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpdateThemeRequest true "Theme id"
// @Success 200 {object} response.Envelope
// @Router /board/theme [put]
func (h *BoardHandler) UpdateTheme(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid theme payload"))
		return
	}

	synchronizer := h.sync.ForSession(session.ID, session.TeacherID)
	if err := synchronizer.SetTheme(req.ThemeID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.stateResponse(c, session, synchronizer.Snapshot()), nil)
}

// SetScheduleOverride godoc
// @Summary Set or clear the manual schedule override
// @Tags Board
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ScheduleOverrideRequest true "Override"
// @Success 200 {object} response.Envelope
// @Router /board/schedule-override [put]
func (h *BoardHandler) SetScheduleOverride(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.ScheduleOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid override payload"))
		return
	}

	synchronizer := h.sync.ForSession(session.ID, session.TeacherID)
	if err := synchronizer.SetScheduleOverride(req.ScheduleOverride); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.stateResponse(c, session, synchronizer.Snapshot()), nil)
}

// Flush godoc
// @Summary Save pending edits immediately
// @Tags Board
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /board/flush [post]
func (h *BoardHandler) Flush(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	synchronizer := h.sync.ForSession(session.ID, session.TeacherID)
	if !synchronizer.Flush(c.Request.Context()) {
		response.Error(c, appErrors.ErrSaveFailed)
		return
	}
	response.JSON(c, http.StatusOK, h.stateResponse(c, session, synchronizer.Snapshot()), nil)
}
