package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classdeck/classdeck-api/internal/models"
	"github.com/classdeck/classdeck-api/internal/repository"
)

type fakeSettingsDocStore struct {
	doc      *repository.SettingsDocument
	getErr   error
	mergeErr error
	merged   map[string]interface{}
}

func (f *fakeSettingsDocStore) Get(ctx context.Context, teacherID string) (*repository.SettingsDocument, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.doc, nil
}

func (f *fakeSettingsDocStore) Merge(ctx context.Context, teacherID string, fields map[string]interface{}) error {
	f.merged = fields
	return f.mergeErr
}

func TestLoadSettingsMergesOverridesOntoDefaults(t *testing.T) {
	store := &fakeSettingsDocStore{doc: &repository.SettingsDocument{
		Doc: json.RawMessage(`{
			"roomNumber": "117",
			"sectionLabels": {"bellRinger": "Warm-Up", "bogus": "Ignored", "discussion": ""},
			"classroomMappings": {"p1": "course-42"}
		}`),
		UpdatedAt: time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC),
	}}
	svc := NewSettingsService(store, zap.NewNop())

	settings, found := svc.Load(context.Background(), "teacher-1")
	require.True(t, found)
	assert.Equal(t, "117", settings.RoomNumber)
	assert.Equal(t, "Warm-Up", settings.SectionLabels[models.SectionBellRinger])
	// Unknown keys dropped, blank overrides keep the default label.
	assert.Equal(t, "Guided Discussion", settings.SectionLabels[models.SectionDiscussion])
	assert.NotContains(t, settings.SectionLabels, models.SectionKey("bogus"))
	assert.Equal(t, "course-42", settings.CourseMappings["p1"])
}

func TestLoadSettingsNeverSavedServesDefaults(t *testing.T) {
	store := &fakeSettingsDocStore{getErr: sql.ErrNoRows}
	svc := NewSettingsService(store, zap.NewNop())

	settings, found := svc.Load(context.Background(), "teacher-1")
	require.False(t, found)
	assert.Equal(t, "", settings.RoomNumber)
	assert.Equal(t, models.DefaultSectionLabels[models.SectionObjective], settings.SectionLabels[models.SectionObjective])
	assert.Empty(t, settings.CourseMappings)
}

func TestSaveSettingsWritesOnlyGivenFields(t *testing.T) {
	store := &fakeSettingsDocStore{}
	svc := NewSettingsService(store, zap.NewNop())

	room := "205"
	ok := svc.Save(context.Background(), "teacher-1", models.SettingsPatch{RoomNumber: &room})
	require.True(t, ok)
	assert.Equal(t, "205", store.merged["roomNumber"])
	assert.NotContains(t, store.merged, "sectionLabels")
	assert.NotContains(t, store.merged, "classroomMappings")
}

func TestSaveSettingsReportsFailureAsBoolean(t *testing.T) {
	store := &fakeSettingsDocStore{mergeErr: errors.New("write timeout")}
	svc := NewSettingsService(store, zap.NewNop())

	room := "205"
	assert.False(t, svc.Save(context.Background(), "teacher-1", models.SettingsPatch{RoomNumber: &room}))
}
