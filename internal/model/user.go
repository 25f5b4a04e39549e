// Package model defines the persisted domain entities.
package model

import (
	"database/sql"
	"time"
)

// Role values stored on a user row. Administrators are not a role; they are
// identified by the static allow-list in configuration.
const (
	RoleStudent = "student"
)

// User is a bot participant, keyed by Telegram ID. Created on first
// interaction and never deleted.
type User struct {
	ID         int64  `db:"id"`
	TelegramID int64  `db:"telegram_id"`
	Username   string `db:"username"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	Role       string `db:"role"`
	// StudentID is the free-text university ID supplied during verification.
	StudentID sql.NullString `db:"student_id"`
	// VerificationPhoto references the Telegram file of the submitted ID card.
	VerificationPhoto sql.NullString `db:"verification_photo"`
	IsVerified        bool           `db:"is_verified"`
	CreatedAt         time.Time      `db:"created_at"`
}

// DisplayName returns the best human-readable name for notifications.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return "student"
}
