// Package users manages student profiles and the photo verification flow.
package users

import (
	"context"
	"log/slog"

	"lecturebot/core/logger"
	"lecturebot/internal/model"
)

// Repository is the subset of user storage the service needs.
type Repository interface {
	Upsert(ctx context.Context, u *model.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	SetVerificationPhoto(ctx context.Context, telegramID int64, fileID string) error
	SetVerified(ctx context.Context, telegramID int64, verified bool) error
}

// AuditRecorder appends administrative audit rows.
type AuditRecorder interface {
	Record(ctx context.Context, adminID int64, action string, targetID int64) error
}

// Service wraps user storage with the verification workflow rules.
type Service struct {
	repo    Repository
	audit   AuditRecorder
	isAdmin func(int64) bool
}

func New(repo Repository, audit AuditRecorder, isAdmin func(int64) bool) *Service {
	return &Service{repo: repo, audit: audit, isAdmin: isAdmin}
}

// Profile is the subset of Telegram account data stored for a user.
type Profile struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

// EnsureUser records the profile on first contact and refreshes it on every
// later one. Verification state is never touched here.
func (s *Service) EnsureUser(ctx context.Context, p Profile) (*model.User, error) {
	u := &model.User{
		TelegramID: p.TelegramID,
		Username:   p.Username,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Role:       model.RoleStudent,
	}
	if err := s.repo.Upsert(ctx, u); err != nil {
		return nil, err
	}
	return s.repo.GetByTelegramID(ctx, p.TelegramID)
}

// Get returns the stored profile for a Telegram account.
func (s *Service) Get(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.repo.GetByTelegramID(ctx, telegramID)
}

// SubmitVerificationPhoto stores the student-card photo reference so admins
// can review it. Resubmitting replaces the previous photo.
func (s *Service) SubmitVerificationPhoto(ctx context.Context, telegramID int64, fileID string) error {
	if err := s.repo.SetVerificationPhoto(ctx, telegramID, fileID); err != nil {
		return err
	}
	logger.Info(ctx, "service.users", "verify.submitted",
		slog.Int64("user_id", telegramID),
	)
	return nil
}

// ApproveVerification marks a user verified. Admin only.
func (s *Service) ApproveVerification(ctx context.Context, adminID, telegramID int64) error {
	return s.decide(ctx, adminID, telegramID, true)
}

// DeclineVerification rejects a pending verification. Admin only.
func (s *Service) DeclineVerification(ctx context.Context, adminID, telegramID int64) error {
	return s.decide(ctx, adminID, telegramID, false)
}

func (s *Service) decide(ctx context.Context, adminID, telegramID int64, verified bool) error {
	if !s.isAdmin(adminID) {
		return model.ErrUnauthorized
	}
	if err := s.repo.SetVerified(ctx, telegramID, verified); err != nil {
		return err
	}

	action := model.ActionDeclineUser
	if verified {
		action = model.ActionVerifyUser
	}
	if err := s.audit.Record(ctx, adminID, action, telegramID); err != nil {
		logger.Error(ctx, "service.users", "verify.audit.fail",
			slog.String("action", action),
			slog.Int64("admin_id", adminID),
			slog.String("err", err.Error()),
		)
	}

	logger.Info(ctx, "service.users", "verify.decided",
		slog.Int64("user_id", telegramID),
		slog.Int64("admin_id", adminID),
		slog.Bool("verified", verified),
	)
	return nil
}
