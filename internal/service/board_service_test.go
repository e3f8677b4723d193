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

type fakeBoardDocStore struct {
	doc      *repository.BoardDocument
	getErr   error
	mergeErr error
	merged   map[string]interface{}
}

func (f *fakeBoardDocStore) Get(ctx context.Context, teacherID, date, classID string) (*repository.BoardDocument, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.doc, nil
}

func (f *fakeBoardDocStore) Merge(ctx context.Context, teacherID, date, classID string, fields map[string]interface{}) error {
	f.merged = fields
	return f.mergeErr
}

func boardDoc(t *testing.T, payload string) *repository.BoardDocument {
	t.Helper()
	return &repository.BoardDocument{
		Doc:       json.RawMessage(payload),
		UpdatedAt: time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC),
	}
}

var testKey = models.BoardKey{TeacherID: "teacher-1", Date: "2026-01-05", ClassID: "p1"}

func TestLoadBoardBackfillsAllSections(t *testing.T) {
	// Only two of six sections stored.
	store := &fakeBoardDocStore{doc: boardDoc(t, `{
		"content": {
			"objective": {"text": "<p>Analyze sources</p>", "media": null},
			"activity": {"text": "Lab stations", "media": null}
		}
	}`)}
	svc := NewBoardService(store, zap.NewNop(), "")

	board, found := svc.Load(context.Background(), testKey)
	require.True(t, found)
	require.Len(t, board.Sections, len(models.SectionKeys))
	assert.Equal(t, "<p>Analyze sources</p>", board.Sections[models.SectionObjective].Text)
	assert.Equal(t, "Lab stations", board.Sections[models.SectionActivity].Text)
	assert.Equal(t, models.Section{}, board.Sections[models.SectionBellRinger])
	assert.Equal(t, models.Section{}, board.Sections[models.SectionIndependentWork])
}

func TestLoadBoardLegacyFlatShapeEquivalence(t *testing.T) {
	nested := &fakeBoardDocStore{doc: boardDoc(t, `{
		"content": {"objective": {"text": "Compare revolutions", "media": null}},
		"themeId": "stem"
	}`)}
	flat := &fakeBoardDocStore{doc: boardDoc(t, `{
		"objective": {"text": "Compare revolutions", "media": null},
		"themeId": "stem"
	}`)}
	svc := NewBoardService(nested, zap.NewNop(), "")

	fromNested, found := svc.Load(context.Background(), testKey)
	require.True(t, found)
	fromFlat, found := NewBoardService(flat, zap.NewNop(), "").Load(context.Background(), testKey)
	require.True(t, found)

	assert.Equal(t, fromNested.Sections, fromFlat.Sections)
	assert.Equal(t, fromNested.ThemeID, fromFlat.ThemeID)
	assert.Equal(t, fromNested.Layout, fromFlat.Layout)
}

func TestLoadBoardNotFoundServesDefaults(t *testing.T) {
	store := &fakeBoardDocStore{getErr: sql.ErrNoRows}
	svc := NewBoardService(store, zap.NewNop(), "standard")

	board, found := svc.Load(context.Background(), testKey)
	require.False(t, found)
	assert.Equal(t, models.EmptySections(), board.Sections)
	assert.Equal(t, models.DefaultGridWeights(), board.Layout)
	assert.Equal(t, "standard", board.ThemeID)
}

func TestLoadBoardSwallowsStoreFailure(t *testing.T) {
	store := &fakeBoardDocStore{getErr: errors.New("connection refused")}
	svc := NewBoardService(store, zap.NewNop(), "")

	board, found := svc.Load(context.Background(), testKey)
	require.False(t, found)
	assert.Equal(t, models.EmptySections(), board.Sections)
}

func TestLoadBoardIgnoresUnknownThemeAndClampsLayout(t *testing.T) {
	store := &fakeBoardDocStore{doc: boardDoc(t, `{
		"content": {},
		"themeId": "does-not-exist",
		"layout": {"col1": 9.5, "col2": 0.1, "col3": 1, "row1": 1, "row2": 1}
	}`)}
	svc := NewBoardService(store, zap.NewNop(), "")

	board, found := svc.Load(context.Background(), testKey)
	require.True(t, found)
	assert.Equal(t, models.DefaultThemeID, board.ThemeID)
	assert.Equal(t, models.GridWeightMax, board.Layout.Col1)
	assert.Equal(t, models.GridWeightMin, board.Layout.Col2)
}

func TestSaveBoardWritesOnlyGivenFields(t *testing.T) {
	store := &fakeBoardDocStore{}
	svc := NewBoardService(store, zap.NewNop(), "")

	theme := "stem"
	ok := svc.Save(context.Background(), testKey, models.BoardPatch{ThemeID: &theme})
	require.True(t, ok)

	assert.Equal(t, "teacher-1", store.merged["teacherId"])
	assert.Equal(t, "2026-01-05", store.merged["date"])
	assert.Equal(t, "p1", store.merged["classId"])
	assert.Equal(t, "stem", store.merged["themeId"])
	assert.NotContains(t, store.merged, "content")
	assert.NotContains(t, store.merged, "layout")
}

func TestSaveBoardClearsScheduleOverride(t *testing.T) {
	store := &fakeBoardDocStore{}
	svc := NewBoardService(store, zap.NewNop(), "")

	ok := svc.Save(context.Background(), testKey, models.BoardPatch{ClearScheduleOverride: true})
	require.True(t, ok)
	require.Contains(t, store.merged, "scheduleOverride")
	assert.Nil(t, store.merged["scheduleOverride"])

	// Without the clear flag the key stays out of the merge payload.
	ok = svc.Save(context.Background(), testKey, models.BoardPatch{})
	require.True(t, ok)
	assert.NotContains(t, store.merged, "scheduleOverride")
}

func TestSaveBoardReportsFailureAsBoolean(t *testing.T) {
	store := &fakeBoardDocStore{mergeErr: errors.New("write timeout")}
	svc := NewBoardService(store, zap.NewNop(), "")

	ok := svc.Save(context.Background(), testKey, models.BoardPatch{Sections: models.EmptySections()})
	assert.False(t, ok)
}
