package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classdeck/classdeck-api/internal/models"
	"github.com/classdeck/classdeck-api/internal/service"
	appErrors "github.com/classdeck/classdeck-api/pkg/errors"
	"github.com/classdeck/classdeck-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the session flow.
type AuthHandler struct {
	service *service.AuthService
	sync    *service.SyncManager
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, sync *service.SyncManager) *AuthHandler {
	return &AuthHandler{service: svc, sync: sync}
}

// SignIn godoc
// @Summary Create a session
// @Description Exchange an upstream identity for a session token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.SignInRequest true "Sign-in payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid sign-in payload"))
		return
	}

	res, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// SignOut godoc
// @Summary End the current session
// @Description Flush pending edits and delete the session record
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 204 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/signout [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	h.sync.Release(c.Request.Context(), session.ID)
	if err := h.service.SignOut(c.Request.Context(), session.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Me godoc
// @Summary Current session info
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	// The classroom bearer token stays server side.
	view := *session
	view.ClassroomToken = ""
	response.JSON(c, http.StatusOK, view, nil)
}
