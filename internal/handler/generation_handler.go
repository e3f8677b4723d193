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

type generationService interface {
	GenerateSection(ctx context.Context, req service.SectionGenerationRequest) (string, error)
	GenerateBoard(ctx context.Context, req service.BoardGenerationRequest) (map[models.SectionKey]string, error)
}

// GenerationHandler drafts section text with the completion collaborator
// and applies it to the session's current board. A bulk generation applies
// all six sections or none.
type GenerationHandler struct {
	service generationService
	sync    *service.SyncManager
}

// NewGenerationHandler creates a new handler.
func NewGenerationHandler(svc generationService, sync *service.SyncManager) *GenerationHandler {
	return &GenerationHandler{service: svc, sync: sync}
}

// Section godoc
// @Summary Generate one section
// @Description Drafts text for a single section and writes it to the current board
// @Tags Generation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.GenerateSectionRequest true "Generation request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /generate/section [post]
func (h *GenerationHandler) Section(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.GenerateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}
	if !models.ValidSectionKey(req.SectionKey) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown section"))
		return
	}

	text, err := h.service.GenerateSection(c.Request.Context(), service.SectionGenerationRequest{
		Topic:        req.Topic,
		Subject:      req.Subject,
		SectionLabel: models.DefaultSectionLabels[req.SectionKey],
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	synchronizer := h.sync.ForSession(session.ID, session.TeacherID)
	if err := synchronizer.EditSection(req.SectionKey, text); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.GeneratedSectionResponse{SectionKey: req.SectionKey, Text: text}, nil)
}

// Board godoc
// @Summary Generate a full lesson plan
// @Description Drafts all six sections; applied only when the whole plan comes back complete
// @Tags Generation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.GenerateBoardRequest true "Generation request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /generate/board [post]
func (h *GenerationHandler) Board(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.GenerateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}

	sections, err := h.service.GenerateBoard(c.Request.Context(), service.BoardGenerationRequest{
		Topic:   req.Topic,
		Subject: req.Subject,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// The plan is complete at this point; edits cannot half-apply.
	synchronizer := h.sync.ForSession(session.ID, session.TeacherID)
	for _, key := range models.SectionKeys {
		if err := synchronizer.EditSection(key, sections[key]); err != nil {
			response.Error(c, err)
			return
		}
	}
	response.JSON(c, http.StatusOK, synchronizer.Snapshot(), nil)
}
