package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"lecturebot/internal/model"
)

// UserRepo persists users keyed by Telegram ID.
type UserRepo struct {
	db *sqlx.DB
}

// Upsert creates the user on first contact or refreshes the profile fields on
// subsequent ones. Verification state is never touched here.
func (r *UserRepo) Upsert(ctx context.Context, u *model.User) error {
	const q = `
		INSERT INTO users (telegram_id, username, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name`
	role := u.Role
	if role == "" {
		role = model.RoleStudent
	}
	if _, err := r.db.ExecContext(ctx, q, u.TelegramID, u.Username, u.FirstName, u.LastName, role); err != nil {
		return model.StoreError("users.upsert", err)
	}
	return nil
}

// GetByTelegramID returns the user with the given Telegram ID.
func (r *UserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	const q = `SELECT * FROM users WHERE telegram_id = $1`
	var u model.User
	if err := r.db.GetContext(ctx, &u, q, telegramID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, model.StoreError("users.get", err)
	}
	return &u, nil
}

// SetVerificationPhoto stores the Telegram file reference of the submitted
// student ID card.
func (r *UserRepo) SetVerificationPhoto(ctx context.Context, telegramID int64, fileID string) error {
	const q = `UPDATE users SET verification_photo = $2 WHERE telegram_id = $1`
	res, err := r.db.ExecContext(ctx, q, telegramID, fileID)
	if err != nil {
		return model.StoreError("users.set_photo", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// SetVerified flips the verification flag after an admin decision.
func (r *UserRepo) SetVerified(ctx context.Context, telegramID int64, verified bool) error {
	const q = `UPDATE users SET is_verified = $2 WHERE telegram_id = $1`
	res, err := r.db.ExecContext(ctx, q, telegramID, verified)
	if err != nil {
		return model.StoreError("users.set_verified", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}
