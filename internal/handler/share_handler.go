package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classdeck/classdeck-api/internal/service"
	"github.com/classdeck/classdeck-api/pkg/response"
)

type shareService interface {
	View(ctx context.Context, teacherID, classID, date string) (*service.ShareView, error)
}

// ShareHandler serves the public read-only board projection. No session is
// required; anyone holding the link can view.
type ShareHandler struct {
	service shareService
}

// NewShareHandler creates a new handler.
func NewShareHandler(svc shareService) *ShareHandler {
	return &ShareHandler{service: svc}
}

// View godoc
// @Summary Public board view
// @Description Read-only projection of a posted board
// @Tags Share
// @Produce json
// @Param teacherId path string true "Teacher id"
// @Param classId path string true "Class id"
// @Param date path string true "ISO date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /share/{teacherId}/{classId}/{date} [get]
func (h *ShareHandler) View(c *gin.Context) {
	view, err := h.service.View(c.Request.Context(), c.Param("teacherId"), c.Param("classId"), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}
