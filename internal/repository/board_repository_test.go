package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestBoardDocumentID(t *testing.T) {
	assert.Equal(t, "t-1_2025-03-10_class_p1", BoardDocumentID("t-1", "2025-03-10", "p1"))
}

func TestBoardRepositoryGet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBoardRepository(db)
	doc := []byte(`{"themeId":"stem","content":{"objective":{"text":"<p>Cells</p>","media":null}}}`)
	rows := sqlmock.NewRows([]string{"id", "teacher_id", "date", "class_id", "doc", "updated_at"}).
		AddRow("t-1_2025-03-10_class_p1", "t-1", "2025-03-10", "p1", doc, time.Now())
	mock.ExpectQuery("SELECT id, teacher_id, date, class_id, doc, updated_at FROM lesson_boards").
		WithArgs("t-1_2025-03-10_class_p1").
		WillReturnRows(rows)

	result, err := repo.Get(context.Background(), "t-1", "2025-03-10", "p1")
	require.NoError(t, err)
	assert.Equal(t, "t-1", result.TeacherID)
	assert.JSONEq(t, string(doc), string(result.Doc))
}

func TestBoardRepositoryGetNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBoardRepository(db)
	mock.ExpectQuery("SELECT id, teacher_id, date, class_id, doc, updated_at FROM lesson_boards").
		WithArgs("t-1_2025-03-10_class_p4").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "t-1", "2025-03-10", "p4")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestBoardRepositoryMerge(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBoardRepository(db)
	mock.ExpectExec("INSERT INTO lesson_boards").
		WithArgs("t-1_2025-03-10_class_p1", "t-1", "2025-03-10", "p1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	fields := map[string]interface{}{
		"teacherId": "t-1",
		"themeId":   "stem",
	}
	require.NoError(t, repo.Merge(context.Background(), "t-1", "2025-03-10", "p1", fields))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepositoryRoundTrip(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSettingsRepository(db)

	mock.ExpectExec("INSERT INTO teacher_settings").
		WithArgs("t-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Merge(context.Background(), "t-1", map[string]interface{}{"roomNumber": "205"}))

	stored, _ := json.Marshal(map[string]interface{}{"roomNumber": "205"})
	rows := sqlmock.NewRows([]string{"teacher_id", "doc", "updated_at"}).
		AddRow("t-1", stored, time.Now())
	mock.ExpectQuery("SELECT teacher_id, doc, updated_at FROM teacher_settings").
		WithArgs("t-1").
		WillReturnRows(rows)

	doc, err := repo.Get(context.Background(), "t-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"roomNumber":"205"}`, string(doc.Doc))
}
