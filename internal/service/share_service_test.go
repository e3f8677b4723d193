package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classdeck/classdeck-api/internal/models"
	appErrors "github.com/classdeck/classdeck-api/pkg/errors"
)

type fixedSettingsLoader struct {
	settings *models.TeacherSettings
}

func (f *fixedSettingsLoader) Load(ctx context.Context, teacherID string) (*models.TeacherSettings, bool) {
	if f.settings != nil {
		return f.settings, true
	}
	return DefaultSettings(teacherID), false
}

func TestShareViewProjectsBoard(t *testing.T) {
	sections := models.EmptySections()
	sections[models.SectionObjective] = models.Section{Text: "<p>Analyze primary sources</p>"}
	loader := &fixedBoardLoader{board: &models.LessonBoard{
		Sections: sections,
		Layout:   models.DefaultGridWeights(),
		ThemeID:  "stem",
	}}
	settings := DefaultSettings("teacher-1")
	settings.SectionLabels[models.SectionBellRinger] = "Warm-Up"
	svc := NewShareService(loader, &fixedSettingsLoader{settings: settings}, zap.NewNop(), "https://classdeck.example.com/")

	view, err := svc.View(context.Background(), "teacher-1", "p2", "2026-01-05")
	require.NoError(t, err)
	require.Len(t, view.Sections, len(models.SectionKeys))

	assert.Equal(t, models.SectionObjective, view.Sections[0].Key)
	assert.Equal(t, "<p>Analyze primary sources</p>", view.Sections[0].Text)
	assert.Equal(t, "Warm-Up", view.Sections[1].Label)
	assert.Equal(t, "stem", view.Theme.ID)
}

func TestShareViewNotFoundWhenNeverSaved(t *testing.T) {
	svc := NewShareService(&fixedBoardLoader{}, &fixedSettingsLoader{}, zap.NewNop(), "https://classdeck.example.com")

	_, err := svc.View(context.Background(), "teacher-1", "p2", "2026-01-05")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestShareURLTrimsTrailingSlash(t *testing.T) {
	svc := NewShareService(&fixedBoardLoader{}, &fixedSettingsLoader{}, zap.NewNop(), "https://classdeck.example.com/")
	assert.Equal(t,
		"https://classdeck.example.com/share/teacher-1/p2/2026-01-05",
		svc.URL("teacher-1", "p2", "2026-01-05"))
}
