package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// BoardDocumentID derives the document id for one teacher/date/class triple.
// The format is shared with the legacy deployment; stored documents are keyed
// by it, so it must never change.
func BoardDocumentID(teacherID, date, classID string) string {
	return fmt.Sprintf("%s_%s_class_%s", teacherID, date, classID)
}

// BoardDocument is a raw stored lesson board. Doc carries the JSON payload
// as written; shape normalization happens above the repository.
type BoardDocument struct {
	ID        string          `db:"id"`
	TeacherID string          `db:"teacher_id"`
	Date      string          `db:"date"`
	ClassID   string          `db:"class_id"`
	Doc       json.RawMessage `db:"doc"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// BoardRepository persists lesson board documents.
type BoardRepository struct {
	db *sqlx.DB
}

// NewBoardRepository constructs the repository.
func NewBoardRepository(db *sqlx.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Get fetches one board document by its composite key. Returns
// sql.ErrNoRows when no document exists yet.
func (r *BoardRepository) Get(ctx context.Context, teacherID, date, classID string) (*BoardDocument, error) {
	const query = `SELECT id, teacher_id, date, class_id, doc, updated_at FROM lesson_boards WHERE id = $1`
	var doc BoardDocument
	if err := r.db.GetContext(ctx, &doc, query, BoardDocumentID(teacherID, date, classID)); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Merge upserts the given fields into the stored document. Existing fields
// not present in the payload survive; the update timestamp is
// server-assigned. Boards are created implicitly on first write.
func (r *BoardRepository) Merge(ctx context.Context, teacherID, date, classID string, fields map[string]interface{}) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal board payload: %w", err)
	}
	const query = `INSERT INTO lesson_boards (id, teacher_id, date, class_id, doc, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW())
ON CONFLICT (id)
DO UPDATE SET doc = lesson_boards.doc || EXCLUDED.doc, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, BoardDocumentID(teacherID, date, classID), teacherID, date, classID, payload); err != nil {
		return fmt.Errorf("merge lesson board: %w", err)
	}
	return nil
}
