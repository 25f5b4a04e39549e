// Package registrations implements attendee sign-up with duplicate
// suppression and lecturer notification.
package registrations

import (
	"context"
	"log/slog"

	"lecturebot/core/logger"
	"lecturebot/internal/model"
)

// Repository is the subset of registration storage the service needs.
type Repository interface {
	Insert(ctx context.Context, lectureID, studentID int64) (int64, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.RegistrationRow, error)
	ListAll(ctx context.Context) ([]model.RegistrationRow, error)
}

// LectureGetter resolves the target lecture and its lecturer.
type LectureGetter interface {
	Get(ctx context.Context, id int64) (*model.Lecture, error)
}

// LecturerNotifier delivers the new-attendee message. Delivery failures are
// logged and swallowed; the registration itself has already committed.
type LecturerNotifier interface {
	NotifyLecturer(ctx context.Context, lecturerID int64, lecture *model.Lecture, student *model.User)
}

// Service wraps registration storage with the sign-up rules.
type Service struct {
	repo     Repository
	lectures LectureGetter
	notifier LecturerNotifier
}

func New(repo Repository, lectures LectureGetter, notifier LecturerNotifier) *Service {
	return &Service{repo: repo, lectures: lectures, notifier: notifier}
}

// Register signs a student up for an active lecture. The insert is
// conditional on the unique (lecture, student) constraint, so a repeat
// attempt surfaces as ErrDuplicateRegistration without racing a concurrent
// one. On success the lecturer is notified.
func (s *Service) Register(ctx context.Context, lectureID int64, student *model.User) (*model.Lecture, error) {
	l, err := s.lectures.Get(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	if l.Status != model.LectureStatusActive {
		return nil, model.ErrLectureClosed
	}

	id, err := s.repo.Insert(ctx, lectureID, student.TelegramID)
	if err != nil {
		if model.IsDuplicate(err) {
			logger.Info(ctx, "service.registrations", "register.duplicate",
				slog.Int64("lecture_id", lectureID),
				slog.Int64("student_id", student.TelegramID),
			)
		}
		return nil, err
	}

	logger.Info(ctx, "service.registrations", "register.ok",
		slog.Int64("registration_id", id),
		slog.Int64("lecture_id", lectureID),
		slog.Int64("student_id", student.TelegramID),
	)

	if s.notifier != nil {
		s.notifier.NotifyLecturer(ctx, l.LecturerID, l, student)
	}
	return l, nil
}

// ForStudent lists the student's registrations with lecture titles joined in.
func (s *Service) ForStudent(ctx context.Context, studentID int64) ([]model.RegistrationRow, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// All lists every registration, for the export surface.
func (s *Service) All(ctx context.Context) ([]model.RegistrationRow, error) {
	return s.repo.ListAll(ctx)
}
