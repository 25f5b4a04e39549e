// Package storage implements sqlx-backed repositories over the PostgreSQL
// schema in migrations/. Repositories return wrapped storage errors; callers
// translate them into user-visible outcomes.
package storage

import "github.com/jmoiron/sqlx"

// Store bundles all repositories over a shared connection pool.
type Store struct {
	Users         *UserRepo
	Lectures      *LectureRepo
	Registrations *RegistrationRepo
	AdminActions  *AdminActionRepo
}

// New builds a Store over the given database pool.
func New(db *sqlx.DB) *Store {
	return &Store{
		Users:         &UserRepo{db: db},
		Lectures:      &LectureRepo{db: db},
		Registrations: &RegistrationRepo{db: db},
		AdminActions:  &AdminActionRepo{db: db},
	}
}
