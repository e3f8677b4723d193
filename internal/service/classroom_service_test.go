package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classdeck/classdeck-api/internal/models"
	appErrors "github.com/classdeck/classdeck-api/pkg/errors"
)

type fakeClassroomAPI struct {
	courses []models.Course
	work    []models.CourseWork
	err     error

	postedCourse string
	postedText   string
	postedLink   string
}

func (f *fakeClassroomAPI) ListCourses(ctx context.Context, token string) ([]models.Course, error) {
	return f.courses, f.err
}

func (f *fakeClassroomAPI) ListCourseWork(ctx context.Context, token, courseID string) ([]models.CourseWork, error) {
	return f.work, f.err
}

func (f *fakeClassroomAPI) CreateAnnouncement(ctx context.Context, token, courseID, text, linkURL string) error {
	f.postedCourse = courseID
	f.postedText = text
	f.postedLink = linkURL
	return f.err
}

type fakeShareLinks struct{}

func (fakeShareLinks) URL(teacherID, classID, date string) string {
	return "https://classdeck.example.com/share/" + teacherID + "/" + classID + "/" + date
}

type fixedBoardLoader struct {
	board *models.LessonBoard
}

func (f *fixedBoardLoader) Load(ctx context.Context, key models.BoardKey) (*models.LessonBoard, bool) {
	if f.board != nil {
		return f.board, true
	}
	return &models.LessonBoard{Key: key, Sections: models.EmptySections()}, false
}

func TestPostBoardStripsMarkupAndLinksShareView(t *testing.T) {
	api := &fakeClassroomAPI{}
	sections := models.EmptySections()
	sections[models.SectionObjective] = models.Section{Text: "<p>Analyze <b>primary</b> sources</p>"}
	loader := &fixedBoardLoader{board: &models.LessonBoard{Sections: sections}}
	svc := NewClassroomService(api, fakeShareLinks{}, loader, zap.NewNop())

	key := models.BoardKey{TeacherID: "teacher-1", Date: "2026-01-05", ClassID: "p2"}
	require.NoError(t, svc.PostBoard(context.Background(), "token", "course-9", key))

	assert.Equal(t, "course-9", api.postedCourse)
	assert.Equal(t, "Agenda for 1/5/2026: Analyze primary sources", api.postedText)
	assert.Equal(t, "https://classdeck.example.com/share/teacher-1/p2/2026-01-05", api.postedLink)
}

func TestPostBoardCollaboratorFailure(t *testing.T) {
	api := &fakeClassroomAPI{err: errors.New("upstream 401")}
	loader := &fixedBoardLoader{board: &models.LessonBoard{Sections: models.EmptySections()}}
	svc := NewClassroomService(api, fakeShareLinks{}, loader, zap.NewNop())

	err := svc.PostBoard(context.Background(), "token", "course-9", models.BoardKey{TeacherID: "t", Date: "2026-01-05", ClassID: "p1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrCollaboratorDown.Code, appErrors.FromError(err).Code)
}

func TestPostBoardRejectsUnsavedBoard(t *testing.T) {
	api := &fakeClassroomAPI{}
	svc := NewClassroomService(api, fakeShareLinks{}, &fixedBoardLoader{}, zap.NewNop())

	err := svc.PostBoard(context.Background(), "token", "course-9", models.BoardKey{TeacherID: "t", Date: "2026-01-05", ClassID: "p1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, api.postedText)
}

func TestCoursesPassThrough(t *testing.T) {
	api := &fakeClassroomAPI{courses: []models.Course{{ID: "c1", Name: "World History"}}}
	svc := NewClassroomService(api, fakeShareLinks{}, &fixedBoardLoader{}, zap.NewNop())

	courses, err := svc.Courses(context.Background(), "token")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "World History", courses[0].Name)
}

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, "Analyze primary sources", StripMarkup("<p>Analyze primary sources</p>"))
	assert.Equal(t, "first second", StripMarkup("<p>first</p><p>second</p>"))
	assert.Equal(t, "plain", StripMarkup("plain"))
	assert.Equal(t, "", StripMarkup(""))
}
