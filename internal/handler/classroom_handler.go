package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classdeck/classdeck-api/internal/dto"
	"github.com/classdeck/classdeck-api/internal/models"
	appErrors "github.com/classdeck/classdeck-api/pkg/errors"
	"github.com/classdeck/classdeck-api/pkg/response"
)

type classroomService interface {
	Courses(ctx context.Context, token string) ([]models.Course, error)
	CourseWork(ctx context.Context, token, courseID string) ([]models.CourseWork, error)
	PostBoard(ctx context.Context, token, courseID string, key models.BoardKey) error
}

// ClassroomHandler exposes the classroom collaborator surface. Every call
// uses the bearer token captured at sign-in; sessions signed in without
// classroom authorization are rejected up front.
type ClassroomHandler struct {
	service classroomService
}

// NewClassroomHandler creates a new handler.
func NewClassroomHandler(svc classroomService) *ClassroomHandler {
	return &ClassroomHandler{service: svc}
}

func classroomToken(c *gin.Context) (string, bool) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return "", false
	}
	if session.ClassroomToken == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "session has no classroom authorization"))
		return "", false
	}
	return session.ClassroomToken, true
}

// Courses godoc
// @Summary List active courses
// @Tags Classroom
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /classroom/courses [get]
func (h *ClassroomHandler) Courses(c *gin.Context) {
	token, ok := classroomToken(c)
	if !ok {
		return
	}

	courses, err := h.service.Courses(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// CourseWork godoc
// @Summary List coursework for a course
// @Description Feeds the assignment-link picker
// @Tags Classroom
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course id"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /classroom/courses/{courseId}/coursework [get]
func (h *ClassroomHandler) CourseWork(c *gin.Context) {
	token, ok := classroomToken(c)
	if !ok {
		return
	}

	work, err := h.service.CourseWork(c.Request.Context(), token, c.Param("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, work, nil)
}

// Announce godoc
// @Summary Post a board to a course stream
// @Description Publishes the objective text plus a share link as an announcement
// @Tags Classroom
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course id"
// @Param payload body dto.AnnounceBoardRequest true "Board reference"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /classroom/courses/{courseId}/announcements [post]
func (h *ClassroomHandler) Announce(c *gin.Context) {
	session := sessionFromContext(c)
	token, ok := classroomToken(c)
	if !ok {
		return
	}

	var req dto.AnnounceBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid announcement payload"))
		return
	}

	key := models.BoardKey{TeacherID: session.TeacherID, Date: req.Date, ClassID: req.ClassID}
	if err := h.service.PostBoard(c.Request.Context(), token, c.Param("courseId"), key); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
