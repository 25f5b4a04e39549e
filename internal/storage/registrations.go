package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"lecturebot/internal/model"
)

// RegistrationRepo persists lecture registrations.
type RegistrationRepo struct {
	db *sqlx.DB
}

// Insert records a registration and returns its generated ID. The
// UNIQUE(lecture_id, student_id) constraint makes the duplicate check atomic:
// a conflicting insert writes nothing, returns no row, and reports
// ErrDuplicateRegistration.
func (r *RegistrationRepo) Insert(ctx context.Context, lectureID, studentID int64) (int64, error) {
	const q = `
		INSERT INTO registrations (lecture_id, student_id)
		VALUES ($1, $2)
		ON CONFLICT (lecture_id, student_id) DO NOTHING
		RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, q, lectureID, studentID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, model.ErrDuplicateRegistration
		}
		return 0, model.StoreError("registrations.insert", err)
	}
	return id, nil
}

const registrationRowColumns = `
	r.id,
	u.first_name AS student_name,
	COALESCE(u.student_id, '') AS student_ref,
	l.title AS lecture_title,
	r.registered_at`

// ListByStudent returns the student's registrations, newest first.
func (r *RegistrationRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.RegistrationRow, error) {
	q := `SELECT` + registrationRowColumns + `
		FROM registrations r
		JOIN users u ON r.student_id = u.telegram_id
		JOIN lectures l ON r.lecture_id = l.id
		WHERE r.student_id = $1
		ORDER BY r.registered_at DESC`
	var out []model.RegistrationRow
	if err := r.db.SelectContext(ctx, &out, q, studentID); err != nil {
		return nil, model.StoreError("registrations.list_by_student", err)
	}
	return out, nil
}

// ListAll returns the full joined registration listing for export.
func (r *RegistrationRepo) ListAll(ctx context.Context) ([]model.RegistrationRow, error) {
	q := `SELECT` + registrationRowColumns + `
		FROM registrations r
		JOIN users u ON r.student_id = u.telegram_id
		JOIN lectures l ON r.lecture_id = l.id
		ORDER BY r.id`
	var out []model.RegistrationRow
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, model.StoreError("registrations.list_all", err)
	}
	return out, nil
}
