package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecturebot/internal/model"
)

type mockRepo struct {
	upsertFn   func(ctx context.Context, u *model.User) error
	getFn      func(ctx context.Context, telegramID int64) (*model.User, error)
	setPhotoFn func(ctx context.Context, telegramID int64, fileID string) error
	verifyFn   func(ctx context.Context, telegramID int64, verified bool) error
}

func (m *mockRepo) Upsert(ctx context.Context, u *model.User) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, u)
	}
	return nil
}
func (m *mockRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, telegramID)
	}
	return &model.User{TelegramID: telegramID}, nil
}
func (m *mockRepo) SetVerificationPhoto(ctx context.Context, telegramID int64, fileID string) error {
	if m.setPhotoFn != nil {
		return m.setPhotoFn(ctx, telegramID, fileID)
	}
	return nil
}
func (m *mockRepo) SetVerified(ctx context.Context, telegramID int64, verified bool) error {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, telegramID, verified)
	}
	return nil
}

type mockAudit struct {
	actions []string
	targets []int64
}

func (m *mockAudit) Record(ctx context.Context, adminID int64, action string, targetID int64) error {
	m.actions = append(m.actions, action)
	m.targets = append(m.targets, targetID)
	return nil
}

func isAdmin(id int64) bool { return id == 1 }

func TestEnsureUser_UpsertsProfile(t *testing.T) {
	var upserted *model.User
	repo := &mockRepo{
		upsertFn: func(ctx context.Context, u *model.User) error {
			upserted = u
			return nil
		},
		getFn: func(ctx context.Context, telegramID int64) (*model.User, error) {
			return &model.User{TelegramID: telegramID, FirstName: "Sara", IsVerified: true}, nil
		},
	}
	svc := New(repo, &mockAudit{}, isAdmin)

	u, err := svc.EnsureUser(context.Background(), Profile{
		TelegramID: 5, Username: "sara", FirstName: "Sara",
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleStudent, upserted.Role)
	assert.Equal(t, "sara", upserted.Username)
	assert.True(t, u.IsVerified, "stored verification state must survive repeat contact")
}

func TestApproveVerification_AdminOnly(t *testing.T) {
	touched := false
	repo := &mockRepo{
		verifyFn: func(ctx context.Context, telegramID int64, verified bool) error {
			touched = true
			return nil
		},
	}
	svc := New(repo, &mockAudit{}, isAdmin)

	err := svc.ApproveVerification(context.Background(), 999, 5)
	require.ErrorIs(t, err, model.ErrUnauthorized)
	assert.False(t, touched)
}

func TestApproveVerification_RecordsAudit(t *testing.T) {
	var gotVerified bool
	repo := &mockRepo{
		verifyFn: func(ctx context.Context, telegramID int64, verified bool) error {
			gotVerified = verified
			return nil
		},
	}
	audit := &mockAudit{}
	svc := New(repo, audit, isAdmin)

	require.NoError(t, svc.ApproveVerification(context.Background(), 1, 5))
	assert.True(t, gotVerified)
	assert.Equal(t, []string{model.ActionVerifyUser}, audit.actions)
	assert.Equal(t, []int64{5}, audit.targets)
}

func TestDeclineVerification_RecordsAudit(t *testing.T) {
	var gotVerified bool
	repo := &mockRepo{
		verifyFn: func(ctx context.Context, telegramID int64, verified bool) error {
			gotVerified = verified
			return nil
		},
	}
	audit := &mockAudit{}
	svc := New(repo, audit, isAdmin)

	require.NoError(t, svc.DeclineVerification(context.Background(), 1, 5))
	assert.False(t, gotVerified)
	assert.Equal(t, []string{model.ActionDeclineUser}, audit.actions)
}

func TestSubmitVerificationPhoto(t *testing.T) {
	var gotFile string
	repo := &mockRepo{
		setPhotoFn: func(ctx context.Context, telegramID int64, fileID string) error {
			gotFile = fileID
			return nil
		},
	}
	svc := New(repo, &mockAudit{}, isAdmin)

	require.NoError(t, svc.SubmitVerificationPhoto(context.Background(), 5, "file-abc"))
	assert.Equal(t, "file-abc", gotFile)
}
