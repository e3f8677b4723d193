package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classdeck/classdeck-api/internal/models"
	"github.com/classdeck/classdeck-api/internal/service"
	appErrors "github.com/classdeck/classdeck-api/pkg/errors"
)

type shareServiceMock struct {
	view *service.ShareView
	err  error
}

func (m *shareServiceMock) View(ctx context.Context, teacherID, classID, date string) (*service.ShareView, error) {
	return m.view, m.err
}

func TestShareHandlerView(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &shareServiceMock{view: &service.ShareView{
		TeacherID: "teacher-1",
		ClassID:   "p2",
		Date:      "2026-01-05",
		Sections: []service.ShareSection{
			{Key: models.SectionObjective, Label: "Lesson Objective", Text: "<p>Analyze sources</p>"},
		},
		Theme: models.ResolveTheme(""),
	}}
	handler := NewShareHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/share/teacher-1/p2/2026-01-05", nil)
	c.Request = req
	c.Params = gin.Params{
		{Key: "teacherId", Value: "teacher-1"},
		{Key: "classId", Value: "p2"},
		{Key: "date", Value: "2026-01-05"},
	}

	handler.View(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data service.ShareView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "teacher-1", envelope.Data.TeacherID)
	assert.Equal(t, models.DefaultThemeID, envelope.Data.Theme.ID)
}

func TestShareHandlerNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewShareHandler(&shareServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "no agenda has been posted for this date")})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/share/teacher-1/p2/2026-01-05", nil)
	c.Request = req

	handler.View(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
