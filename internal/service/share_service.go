package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/classdeck/classdeck-api/internal/models"
	appErrors "github.com/classdeck/classdeck-api/pkg/errors"
)

type shareBoardLoader interface {
	Load(ctx context.Context, key models.BoardKey) (*models.LessonBoard, bool)
}

type shareSettingsLoader interface {
	Load(ctx context.Context, teacherID string) (*models.TeacherSettings, bool)
}

// ShareService builds the read-only student projection of a board. No
// authentication applies; a board that was never saved is a not-found, not
// a blank default.
type ShareService struct {
	boards   shareBoardLoader
	settings shareSettingsLoader
	logger   *zap.Logger
	baseURL  string
}

// NewShareService constructs the service. baseURL is the public origin the
// share links point at.
func NewShareService(boards shareBoardLoader, settings shareSettingsLoader, logger *zap.Logger, baseURL string) *ShareService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShareService{
		boards:   boards,
		settings: settings,
		logger:   logger,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// ShareSection is one rendered slot of the student view.
type ShareSection struct {
	Key   models.SectionKey `json:"key"`
	Label string            `json:"label"`
	Text  string            `json:"text"`
	Media *models.Media     `json:"media"`
}

// ShareView is the full read-only projection.
type ShareView struct {
	TeacherID string             `json:"teacherId"`
	ClassID   string             `json:"classId"`
	Date      string             `json:"date"`
	Sections  []ShareSection     `json:"sections"`
	Layout    models.GridWeights `json:"layout"`
	Theme     models.Theme       `json:"theme"`
}

// View resolves the projection for a (teacher, class, date) triple.
func (s *ShareService) View(ctx context.Context, teacherID, classID, date string) (*ShareView, error) {
	key := models.BoardKey{TeacherID: teacherID, Date: date, ClassID: classID}
	board, found := s.boards.Load(ctx, key)
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no agenda has been posted for this date")
	}

	labels := models.DefaultSectionLabels
	if settings, ok := s.settings.Load(ctx, teacherID); ok {
		labels = settings.SectionLabels
	}

	view := &ShareView{
		TeacherID: teacherID,
		ClassID:   classID,
		Date:      date,
		Sections:  make([]ShareSection, 0, len(models.SectionKeys)),
		Layout:    board.Layout,
		Theme:     models.ResolveTheme(board.ThemeID),
	}
	for _, sectionKey := range models.SectionKeys {
		section := board.Sections[sectionKey]
		view.Sections = append(view.Sections, ShareSection{
			Key:   sectionKey,
			Label: labels[sectionKey],
			Text:  section.Text,
			Media: section.Media,
		})
	}
	return view, nil
}

// URL returns the public link for a board.
func (s *ShareService) URL(teacherID, classID, date string) string {
	return fmt.Sprintf("%s/share/%s/%s/%s", s.baseURL, teacherID, classID, date)
}
