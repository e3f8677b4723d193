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

type boardDocumentStore interface {
	Get(ctx context.Context, teacherID, date, classID string) (*repository.BoardDocument, error)
	Merge(ctx context.Context, teacherID, date, classID string, fields map[string]interface{}) error
}

// BoardService is the document-store adapter for lesson boards. It owns the
// shape normalization (legacy flat records vs the current content-nested
// shape) and the six-section invariant. Store failures never escape: a
// failed read degrades to the default board, a failed write reports false.
type BoardService struct {
	store          boardDocumentStore
	logger         *zap.Logger
	defaultThemeID string
}

// NewBoardService constructs the adapter.
func NewBoardService(store boardDocumentStore, logger *zap.Logger, defaultThemeID string) *BoardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultThemeID == "" {
		defaultThemeID = models.DefaultThemeID
	}
	return &BoardService{store: store, logger: logger, defaultThemeID: defaultThemeID}
}

// storedSections mirrors the section fields of a stored document. Every
// field is optional; absent sections are backfilled on load.
type storedSections struct {
	Objective       *models.Section `json:"objective"`
	BellRinger      *models.Section `json:"bellRinger"`
	MiniLecture     *models.Section `json:"miniLecture"`
	Discussion      *models.Section `json:"discussion"`
	Activity        *models.Section `json:"activity"`
	IndependentWork *models.Section `json:"independentWork"`
}

// storedBoard decodes both document generations: the current shape nests the
// sections under "content"; legacy records carry them at the top level.
type storedBoard struct {
	storedSections
	Content          *storedSections      `json:"content"`
	Layout           *models.GridWeights  `json:"layout"`
	ThemeID          string               `json:"themeId"`
	ScheduleOverride *models.ScheduleType `json:"scheduleOverride"`
}

func (s *storedSections) toSectionMap() map[models.SectionKey]models.Section {
	sections := models.EmptySections()
	set := func(key models.SectionKey, value *models.Section) {
		if value != nil {
			sections[key] = *value
		}
	}
	set(models.SectionObjective, s.Objective)
	set(models.SectionBellRinger, s.BellRinger)
	set(models.SectionMiniLecture, s.MiniLecture)
	set(models.SectionDiscussion, s.Discussion)
	set(models.SectionActivity, s.Activity)
	set(models.SectionIndependentWork, s.IndependentWork)
	return sections
}

// DefaultBoard returns the blank board used until a first save exists.
func (s *BoardService) DefaultBoard(key models.BoardKey) *models.LessonBoard {
	return &models.LessonBoard{
		Key:      key,
		Sections: models.EmptySections(),
		Layout:   models.DefaultGridWeights(),
		ThemeID:  s.defaultThemeID,
	}
}

// Load fetches and normalizes the board for the given key. The returned
// board always carries exactly the six section keys; found is false when no
// document exists or the read failed, in which case the defaults are
// returned.
func (s *BoardService) Load(ctx context.Context, key models.BoardKey) (*models.LessonBoard, bool) {
	doc, err := s.store.Get(ctx, key.TeacherID, key.Date, key.ClassID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("board read failed, serving defaults",
				zap.String("teacher_id", key.TeacherID),
				zap.String("date", key.Date),
				zap.String("class_id", key.ClassID),
				zap.Error(err))
		}
		return s.DefaultBoard(key), false
	}

	var stored storedBoard
	if err := json.Unmarshal(doc.Doc, &stored); err != nil {
		s.logger.Warn("board document malformed, serving defaults",
			zap.String("teacher_id", key.TeacherID),
			zap.String("date", key.Date),
			zap.Error(err))
		return s.DefaultBoard(key), false
	}

	content := stored.Content
	if content == nil {
		content = &stored.storedSections
	}

	board := &models.LessonBoard{
		Key:      key,
		Sections: content.toSectionMap(),
		Layout:   models.DefaultGridWeights(),
		ThemeID:  s.defaultThemeID,
	}
	if stored.Layout != nil {
		board.Layout = stored.Layout.Clamp()
	}
	if _, ok := models.Themes[stored.ThemeID]; ok {
		board.ThemeID = stored.ThemeID
	}
	if stored.ScheduleOverride != nil && models.ValidScheduleType(*stored.ScheduleOverride) {
		board.ScheduleOverride = stored.ScheduleOverride
	}
	updatedAt := doc.UpdatedAt
	board.UpdatedAt = &updatedAt
	return board, true
}

// Save merge-writes the given fields. Unspecified fields persist in the
// stored document. Returns false when the write did not complete.
func (s *BoardService) Save(ctx context.Context, key models.BoardKey, patch models.BoardPatch) bool {
	fields := map[string]interface{}{
		"teacherId": key.TeacherID,
		"date":      key.Date,
		"classId":   key.ClassID,
	}
	if patch.Sections != nil {
		fields["content"] = patch.Sections
	}
	if patch.Layout != nil {
		fields["layout"] = patch.Layout.Clamp()
	}
	if patch.ThemeID != nil {
		fields["themeId"] = *patch.ThemeID
	}
	if patch.ScheduleOverride != nil {
		fields["scheduleOverride"] = *patch.ScheduleOverride
	} else if patch.ClearScheduleOverride {
		// An explicit null overwrites the stored key in the jsonb merge;
		// omitting it would let the old override survive the save.
		fields["scheduleOverride"] = nil
	}

	if err := s.store.Merge(ctx, key.TeacherID, key.Date, key.ClassID, fields); err != nil {
		s.logger.Warn("board save failed",
			zap.String("teacher_id", key.TeacherID),
			zap.String("date", key.Date),
			zap.String("class_id", key.ClassID),
			zap.Error(err))
		return false
	}
	return true
}
