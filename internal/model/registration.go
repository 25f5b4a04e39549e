package model

import "time"

// Registration links a student to a lecture. At most one registration exists
// per (lecture, student) pair, enforced by a storage uniqueness constraint.
type Registration struct {
	ID           int64     `db:"id"`
	LectureID    int64     `db:"lecture_id"`
	StudentID    int64     `db:"student_id"`
	RegisteredAt time.Time `db:"registered_at"`
}

// RegistrationRow is the joined projection used by listings and exports.
type RegistrationRow struct {
	ID           int64     `db:"id"`
	StudentName  string    `db:"student_name"`
	StudentRef   string    `db:"student_ref"`
	LectureTitle string    `db:"lecture_title"`
	RegisteredAt time.Time `db:"registered_at"`
}
