package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classdeck/classdeck-api/internal/models"
	appErrors "github.com/classdeck/classdeck-api/pkg/errors"
	"github.com/classdeck/classdeck-api/pkg/response"
)

type settingsService interface {
	Load(ctx context.Context, teacherID string) (*models.TeacherSettings, bool)
	Save(ctx context.Context, teacherID string, patch models.SettingsPatch) bool
}

// SettingsHandler exposes the per-teacher settings document.
type SettingsHandler struct {
	service settingsService
}

// NewSettingsHandler creates a new handler.
func NewSettingsHandler(svc settingsService) *SettingsHandler {
	return &SettingsHandler{service: svc}
}

// Get godoc
// @Summary Teacher settings
// @Description Returns the teacher's settings, default-filled when never saved
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	settings, _ := h.service.Load(c.Request.Context(), session.TeacherID)
	response.JSON(c, http.StatusOK, settings, nil)
}

// Update godoc
// @Summary Update teacher settings
// @Description Merge-writes only the provided fields
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.SettingsPatch true "Settings changes"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /settings [patch]
func (h *SettingsHandler) Update(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid settings payload"))
		return
	}
	for key := range patch.SectionLabels {
		if !models.ValidSectionKey(key) {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown section label key"))
			return
		}
	}

	if !h.service.Save(c.Request.Context(), session.TeacherID, patch) {
		response.Error(c, appErrors.ErrSaveFailed)
		return
	}

	settings, _ := h.service.Load(c.Request.Context(), session.TeacherID)
	response.JSON(c, http.StatusOK, settings, nil)
}
