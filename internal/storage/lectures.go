package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"lecturebot/internal/model"
)

// LectureRepo persists lectures and their lifecycle status.
type LectureRepo struct {
	db *sqlx.DB
}

// Insert stores a new pending lecture and returns its generated ID.
func (r *LectureRepo) Insert(ctx context.Context, l *model.Lecture) (int64, error) {
	const q = `
		INSERT INTO lectures
			(lecturer_id, title, description, subject, prerequisites, duration, proposed_times, status, admin_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)
		RETURNING id`
	status := l.Status
	if status == "" {
		status = model.LectureStatusPending
	}
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		l.LecturerID, l.Title, l.Description, l.Subject, l.Prerequisites, l.Duration, l.ProposedTimes, status,
	).Scan(&id)
	if err != nil {
		return 0, model.StoreError("lectures.insert", err)
	}
	return id, nil
}

const lectureJoinColumns = `
	l.id, l.lecturer_id, l.title, l.description, l.subject, l.prerequisites,
	l.duration, l.proposed_times, l.status, l.admin_approved, l.created_at,
	u.first_name AS lecturer_first_name, u.username AS lecturer_username`

// GetByID returns a lecture joined with its lecturer's display fields.
func (r *LectureRepo) GetByID(ctx context.Context, id int64) (*model.Lecture, error) {
	q := `SELECT` + lectureJoinColumns + `
		FROM lectures l
		JOIN users u ON l.lecturer_id = u.telegram_id
		WHERE l.id = $1`
	var l model.Lecture
	if err := r.db.GetContext(ctx, &l, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, model.StoreError("lectures.get", err)
	}
	return &l, nil
}

// ListPending returns lectures awaiting review in insertion order.
func (r *LectureRepo) ListPending(ctx context.Context) ([]model.Lecture, error) {
	q := `SELECT` + lectureJoinColumns + `
		FROM lectures l
		JOIN users u ON l.lecturer_id = u.telegram_id
		WHERE l.status = $1 AND l.admin_approved = FALSE
		ORDER BY l.id`
	var out []model.Lecture
	if err := r.db.SelectContext(ctx, &out, q, model.LectureStatusPending); err != nil {
		return nil, model.StoreError("lectures.list_pending", err)
	}
	return out, nil
}

// ListActive returns the browsable catalog, most recently created first.
func (r *LectureRepo) ListActive(ctx context.Context) ([]model.Lecture, error) {
	q := `SELECT` + lectureJoinColumns + `
		FROM lectures l
		JOIN users u ON l.lecturer_id = u.telegram_id
		WHERE l.status = $1 AND l.admin_approved = TRUE
		ORDER BY l.created_at DESC`
	var out []model.Lecture
	if err := r.db.SelectContext(ctx, &out, q, model.LectureStatusActive); err != nil {
		return nil, model.StoreError("lectures.list_active", err)
	}
	return out, nil
}

// SetStatus applies a lifecycle transition. Re-applying the same status is a
// harmless redundant write.
func (r *LectureRepo) SetStatus(ctx context.Context, id int64, status string, approved bool) error {
	const q = `UPDATE lectures SET status = $2, admin_approved = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, status, approved)
	if err != nil {
		return model.StoreError("lectures.set_status", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}
