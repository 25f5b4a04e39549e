// Package lectures implements the proposal and approval workflow.
package lectures

import (
	"context"
	"log/slog"
	"strings"

	"lecturebot/core/logger"
	"lecturebot/internal/model"
)

// DefaultProposedTimes is stored when a proposal does not carry a schedule.
const DefaultProposedTimes = "To be scheduled with attendees"

// Repository is the subset of lecture storage the service needs.
type Repository interface {
	Insert(ctx context.Context, l *model.Lecture) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Lecture, error)
	ListPending(ctx context.Context) ([]model.Lecture, error)
	ListActive(ctx context.Context) ([]model.Lecture, error)
	SetStatus(ctx context.Context, id int64, status string, approved bool) error
}

// AuditRecorder appends administrative audit rows.
type AuditRecorder interface {
	Record(ctx context.Context, adminID int64, action string, targetID int64) error
}

// Proposal carries the wizard answers for a new lecture.
type Proposal struct {
	LecturerID    int64
	Title         string
	Description   string
	Subject       string
	Prerequisites string
	Duration      string
	ProposedTimes string
}

// Service wraps lecture storage with the approval workflow rules.
type Service struct {
	repo    Repository
	audit   AuditRecorder
	isAdmin func(int64) bool
}

func New(repo Repository, audit AuditRecorder, isAdmin func(int64) bool) *Service {
	return &Service{repo: repo, audit: audit, isAdmin: isAdmin}
}

// Submit stores a proposal as pending and returns the stored lecture.
func (s *Service) Submit(ctx context.Context, p Proposal) (*model.Lecture, error) {
	times := strings.TrimSpace(p.ProposedTimes)
	if times == "" {
		times = DefaultProposedTimes
	}
	l := &model.Lecture{
		Title:         strings.TrimSpace(p.Title),
		Description:   strings.TrimSpace(p.Description),
		Subject:       strings.TrimSpace(p.Subject),
		Prerequisites: strings.TrimSpace(p.Prerequisites),
		Duration:      strings.TrimSpace(p.Duration),
		ProposedTimes: times,
		LecturerID:    p.LecturerID,
		Status:        model.LectureStatusPending,
	}
	id, err := s.repo.Insert(ctx, l)
	if err != nil {
		return nil, err
	}
	l.ID = id

	logger.Info(ctx, "service.lectures", "proposal.submitted",
		slog.Int64("lecture_id", id),
		slog.Int64("lecturer_id", p.LecturerID),
		slog.String("subject", l.Subject),
	)
	return l, nil
}

// Get returns a lecture with lecturer display columns joined in.
func (s *Service) Get(ctx context.Context, id int64) (*model.Lecture, error) {
	return s.repo.GetByID(ctx, id)
}

// Pending lists proposals awaiting review, oldest first.
func (s *Service) Pending(ctx context.Context) ([]model.Lecture, error) {
	return s.repo.ListPending(ctx)
}

// Active lists approved lectures, newest first.
func (s *Service) Active(ctx context.Context) ([]model.Lecture, error) {
	return s.repo.ListActive(ctx)
}

// Approve moves a pending proposal to active. Admin only. A lecture that
// already left pending keeps its status, so a stale approval button cannot
// resurrect a rejected proposal.
func (s *Service) Approve(ctx context.Context, adminID, lectureID int64) (*model.Lecture, error) {
	return s.decide(ctx, adminID, lectureID, model.LectureStatusActive)
}

// Reject marks a pending proposal rejected. Admin only.
func (s *Service) Reject(ctx context.Context, adminID, lectureID int64) (*model.Lecture, error) {
	return s.decide(ctx, adminID, lectureID, model.LectureStatusRejected)
}

func (s *Service) decide(ctx context.Context, adminID, lectureID int64, status string) (*model.Lecture, error) {
	if !s.isAdmin(adminID) {
		return nil, model.ErrUnauthorized
	}
	current, err := s.repo.GetByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	// Only pending proposals can be decided. Duplicate or out-of-order
	// button taps leave the earlier decision in place.
	if current.Status != model.LectureStatusPending {
		logger.Warn(ctx, "service.lectures", "decision.stale",
			slog.Int64("lecture_id", lectureID),
			slog.Int64("admin_id", adminID),
			slog.String("current_status", current.Status),
			slog.String("requested_status", status),
		)
		return current, nil
	}
	approved := status == model.LectureStatusActive
	if err := s.repo.SetStatus(ctx, lectureID, status, approved); err != nil {
		return nil, err
	}

	action := model.ActionRejectLecture
	if approved {
		action = model.ActionApproveLecture
	}
	if err := s.audit.Record(ctx, adminID, action, lectureID); err != nil {
		logger.Error(ctx, "service.lectures", "decision.audit.fail",
			slog.String("action", action),
			slog.Int64("admin_id", adminID),
			slog.String("err", err.Error()),
		)
	}

	logger.Info(ctx, "service.lectures", "proposal.decided",
		slog.Int64("lecture_id", lectureID),
		slog.Int64("admin_id", adminID),
		slog.String("status", status),
	)
	return s.repo.GetByID(ctx, lectureID)
}
