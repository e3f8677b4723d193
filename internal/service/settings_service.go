package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/classdeck/classdeck-api/internal/models"
	"github.com/classdeck/classdeck-api/internal/repository"
)

type settingsDocumentStore interface {
	Get(ctx context.Context, teacherID string) (*repository.SettingsDocument, error)
	Merge(ctx context.Context, teacherID string, fields map[string]interface{}) error
}

// SettingsService is the document-store adapter for per-teacher settings.
// Same degradation contract as the board adapter: reads fall back to
// defaults, writes report success as a boolean.
type SettingsService struct {
	store  settingsDocumentStore
	logger *zap.Logger
}

// NewSettingsService constructs the adapter.
func NewSettingsService(store settingsDocumentStore, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{store: store, logger: logger}
}

type storedSettings struct {
	RoomNumber     string                       `json:"roomNumber"`
	SectionLabels  map[models.SectionKey]string `json:"sectionLabels"`
	CourseMappings map[string]string            `json:"classroomMappings"`
}

// DefaultSettings returns settings as they look before any save: default
// section labels, no room, no mappings.
func DefaultSettings(teacherID string) *models.TeacherSettings {
	labels := make(map[models.SectionKey]string, len(models.DefaultSectionLabels))
	for key, label := range models.DefaultSectionLabels {
		labels[key] = label
	}
	return &models.TeacherSettings{
		TeacherID:      teacherID,
		SectionLabels:  labels,
		CourseMappings: map[string]string{},
	}
}

// Load fetches the teacher's settings, filling defaults for anything
// absent. found is false when the teacher has never saved settings or the
// read failed.
func (s *SettingsService) Load(ctx context.Context, teacherID string) (*models.TeacherSettings, bool) {
	settings := DefaultSettings(teacherID)

	doc, err := s.store.Get(ctx, teacherID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("settings read failed, serving defaults",
				zap.String("teacher_id", teacherID), zap.Error(err))
		}
		return settings, false
	}

	var stored storedSettings
	if err := json.Unmarshal(doc.Doc, &stored); err != nil {
		s.logger.Warn("settings document malformed, serving defaults",
			zap.String("teacher_id", teacherID), zap.Error(err))
		return settings, false
	}

	settings.RoomNumber = stored.RoomNumber
	for key, label := range stored.SectionLabels {
		if models.ValidSectionKey(key) && label != "" {
			settings.SectionLabels[key] = label
		}
	}
	for classID, courseID := range stored.CourseMappings {
		settings.CourseMappings[classID] = courseID
	}
	updatedAt := doc.UpdatedAt
	settings.UpdatedAt = &updatedAt
	return settings, true
}

// Save merge-writes the explicit settings changes. Only called from a user
// save action, never from autosave.
func (s *SettingsService) Save(ctx context.Context, teacherID string, patch models.SettingsPatch) bool {
	fields := map[string]interface{}{}
	if patch.RoomNumber != nil {
		fields["roomNumber"] = *patch.RoomNumber
	}
	if patch.SectionLabels != nil {
		fields["sectionLabels"] = patch.SectionLabels
	}
	if patch.CourseMappings != nil {
		fields["classroomMappings"] = patch.CourseMappings
	}
	if len(fields) == 0 {
		return true
	}

	if err := s.store.Merge(ctx, teacherID, fields); err != nil {
		s.logger.Warn("settings save failed",
			zap.String("teacher_id", teacherID), zap.Error(err))
		return false
	}
	return true
}
