package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classdeck/classdeck-api/internal/middleware"
	"github.com/classdeck/classdeck-api/internal/models"
	"github.com/classdeck/classdeck-api/internal/schedule"
	"github.com/classdeck/classdeck-api/internal/service"
)

type boardStoreMock struct {
	loads int
	saves int
}

func (m *boardStoreMock) Load(ctx context.Context, key models.BoardKey) (*models.LessonBoard, bool) {
	m.loads++
	return &models.LessonBoard{
		Key:      key,
		Sections: models.EmptySections(),
		Layout:   models.DefaultGridWeights(),
		ThemeID:  models.DefaultThemeID,
	}, true
}

func (m *boardStoreMock) Save(ctx context.Context, key models.BoardKey, patch models.BoardPatch) bool {
	m.saves++
	return true
}

type classifierMock struct{}

func (classifierMock) ClassifyDate(ctx context.Context, date string) models.DayClassification {
	return models.DayClassification{ScheduleType: models.ScheduleA, OtherEvents: []string{}}
}

type scheduleResolverMock struct{}

func (scheduleResolverMock) DayScheduleFor(ctx context.Context, date, room string, override *models.ScheduleType) service.DaySchedule {
	scheduleType := models.ScheduleA
	if override != nil {
		scheduleType = *override
	}
	return service.DaySchedule{
		ScheduleType: scheduleType,
		Details:      schedule.Details(scheduleType, room),
		LunchTier:    schedule.LunchTierForRoom(room),
	}
}

type settingsLoaderMock struct{}

func (settingsLoaderMock) Load(ctx context.Context, teacherID string) (*models.TeacherSettings, bool) {
	return service.DefaultSettings(teacherID), false
}

func testSession() *models.Session {
	return &models.Session{ID: "sess-1", TeacherID: "teacher-1", ExpiresAt: time.Now().Add(time.Hour)}
}

func newTestBoardHandler(store *boardStoreMock) *BoardHandler {
	manager := service.NewSyncManager(store, classifierMock{}, zap.NewNop(), time.Minute)
	return NewBoardHandler(manager, scheduleResolverMock{}, settingsLoaderMock{})
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestBoardHandlerSelectLoadsBoard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &boardStoreMock{}
	handler := newTestBoardHandler(store)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPut, "/board/selection", map[string]string{"date": "2026-01-05", "classId": "p1"})
	c.Set(middleware.ContextSessionKey, testSession())

	handler.Select(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, store.loads)

	var envelope struct {
		Data boardStateResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, service.SyncReady, envelope.Data.Sync.State)
	assert.Equal(t, "2026-01-05", envelope.Data.Sync.Selection.Date)
}

func TestBoardHandlerEditSection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &boardStoreMock{}
	handler := newTestBoardHandler(store)
	session := testSession()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPut, "/board/selection", map[string]string{"date": "2026-01-05", "classId": "p1"})
	c.Set(middleware.ContextSessionKey, session)
	handler.Select(c)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPut, "/board/sections/objective", map[string]string{"text": "<p>Analyze sources</p>"})
	c.Params = gin.Params{{Key: "key", Value: "objective"}}
	c.Set(middleware.ContextSessionKey, session)

	handler.EditSection(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data boardStateResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, service.SyncDirty, envelope.Data.Sync.State)
	assert.Equal(t, "<p>Analyze sources</p>", envelope.Data.Sync.Board.Sections[models.SectionObjective].Text)
}

func TestBoardHandlerRejectsUnknownSection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestBoardHandler(&boardStoreMock{})
	session := testSession()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPut, "/board/sections/homework", map[string]string{"text": "x"})
	c.Params = gin.Params{{Key: "key", Value: "homework"}}
	c.Set(middleware.ContextSessionKey, session)

	handler.EditSection(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBoardHandlerUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestBoardHandler(&boardStoreMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodGet, "/board", nil)

	handler.State(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
