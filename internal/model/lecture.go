package model

import "time"

// Lecture lifecycle states. Approval is one-way: once active or rejected a
// lecture never returns to pending.
const (
	LectureStatusPending  = "pending"
	LectureStatusActive   = "active"
	LectureStatusRejected = "rejected"
)

// Lecture is a teaching proposal created by a verified senior student.
// All descriptive fields hold free text collected by the proposal wizard.
type Lecture struct {
	ID            int64     `db:"id"`
	LecturerID    int64     `db:"lecturer_id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	Subject       string    `db:"subject"`
	Prerequisites string    `db:"prerequisites"`
	Duration      string    `db:"duration"`
	ProposedTimes string    `db:"proposed_times"`
	Status        string    `db:"status"`
	AdminApproved bool      `db:"admin_approved"`
	CreatedAt     time.Time `db:"created_at"`

	// Joined lecturer columns, populated by listing queries only.
	LecturerFirstName string `db:"lecturer_first_name"`
	LecturerUsername  string `db:"lecturer_username"`
}

// LecturerDisplayName returns the joined lecturer name for list rendering.
func (l *Lecture) LecturerDisplayName() string {
	if l.LecturerFirstName != "" {
		return l.LecturerFirstName
	}
	if l.LecturerUsername != "" {
		return "@" + l.LecturerUsername
	}
	return "unknown"
}
