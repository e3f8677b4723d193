package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/classdeck/classdeck-api/internal/models"
	appErrors "github.com/classdeck/classdeck-api/pkg/errors"
)

type classroomAPI interface {
	ListCourses(ctx context.Context, token string) ([]models.Course, error)
	ListCourseWork(ctx context.Context, token, courseID string) ([]models.CourseWork, error)
	CreateAnnouncement(ctx context.Context, token, courseID, text, linkURL string) error
}

type shareLinkBuilder interface {
	URL(teacherID, classID, date string) string
}

// markupTags matches the inline tags stored with rich section text.
var markupTags = regexp.MustCompile(`<[^>]+>`)

// ClassroomService mirrors a board to the external classroom stream. All
// calls carry the session's own bearer token; failures come back as typed
// collaborator errors and never touch board state.
type ClassroomService struct {
	api    classroomAPI
	share  shareLinkBuilder
	boards shareBoardLoader
	logger *zap.Logger
}

// NewClassroomService constructs the service.
func NewClassroomService(api classroomAPI, share shareLinkBuilder, boards shareBoardLoader, logger *zap.Logger) *ClassroomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{api: api, share: share, boards: boards, logger: logger}
}

// Courses lists the caller's active courses.
func (s *ClassroomService) Courses(ctx context.Context, token string) ([]models.Course, error) {
	if s.api == nil {
		return nil, appErrors.Clone(appErrors.ErrCollaboratorDown, "classroom integration is not configured")
	}
	courses, err := s.api.ListCourses(ctx, token)
	if err != nil {
		s.logger.Warn("course listing failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrCollaboratorDown.Code, appErrors.ErrCollaboratorDown.Status, "could not list courses")
	}
	return courses, nil
}

// CourseWork lists the assignments of one course for the link picker.
func (s *ClassroomService) CourseWork(ctx context.Context, token, courseID string) ([]models.CourseWork, error) {
	if s.api == nil {
		return nil, appErrors.Clone(appErrors.ErrCollaboratorDown, "classroom integration is not configured")
	}
	work, err := s.api.ListCourseWork(ctx, token, courseID)
	if err != nil {
		s.logger.Warn("coursework listing failed", zap.String("course_id", courseID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrCollaboratorDown.Code, appErrors.ErrCollaboratorDown.Status, "could not list coursework")
	}
	return work, nil
}

// PostBoard announces a board to a course stream: the objective text with
// markup stripped, plus a link material pointing at the public share view.
func (s *ClassroomService) PostBoard(ctx context.Context, token, courseID string, key models.BoardKey) error {
	if s.api == nil {
		return appErrors.Clone(appErrors.ErrCollaboratorDown, "classroom integration is not configured")
	}

	board, found := s.boards.Load(ctx, key)
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "no agenda has been saved for this date")
	}
	objective := StripMarkup(board.Sections[models.SectionObjective].Text)
	text := fmt.Sprintf("Agenda for %s: %s", humanDate(key.Date), objective)
	shareURL := s.share.URL(key.TeacherID, key.ClassID, key.Date)

	if err := s.api.CreateAnnouncement(ctx, token, courseID, text, shareURL); err != nil {
		s.logger.Warn("announcement post failed",
			zap.String("course_id", courseID),
			zap.String("date", key.Date),
			zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrCollaboratorDown.Code, appErrors.ErrCollaboratorDown.Status, "could not post to the class stream")
	}
	return nil
}

// StripMarkup flattens stored rich text to plain text.
func StripMarkup(text string) string {
	return strings.Join(strings.Fields(markupTags.ReplaceAllString(text, " ")), " ")
}

func humanDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format("1/2/2006")
}
