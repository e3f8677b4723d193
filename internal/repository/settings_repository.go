package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SettingsDocument is a raw stored teacher settings record.
type SettingsDocument struct {
	TeacherID string          `db:"teacher_id"`
	Doc       json.RawMessage `db:"doc"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// SettingsRepository persists per-teacher settings documents.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository constructs the repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get fetches the settings document for a teacher. Returns sql.ErrNoRows
// when the teacher has never saved settings.
func (r *SettingsRepository) Get(ctx context.Context, teacherID string) (*SettingsDocument, error) {
	const query = `SELECT teacher_id, doc, updated_at FROM teacher_settings WHERE teacher_id = $1`
	var doc SettingsDocument
	if err := r.db.GetContext(ctx, &doc, query, teacherID); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Merge upserts the given fields into the settings document, leaving
// unspecified fields untouched.
func (r *SettingsRepository) Merge(ctx context.Context, teacherID string, fields map[string]interface{}) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal settings payload: %w", err)
	}
	const query = `INSERT INTO teacher_settings (teacher_id, doc, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (teacher_id)
DO UPDATE SET doc = teacher_settings.doc || EXCLUDED.doc, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, teacherID, payload); err != nil {
		return fmt.Errorf("merge teacher settings: %w", err)
	}
	return nil
}
