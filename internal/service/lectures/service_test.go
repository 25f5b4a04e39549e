package lectures

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecturebot/internal/model"
)

type mockRepo struct {
	insertFn      func(ctx context.Context, l *model.Lecture) (int64, error)
	getByIDFn     func(ctx context.Context, id int64) (*model.Lecture, error)
	listPendingFn func(ctx context.Context) ([]model.Lecture, error)
	listActiveFn  func(ctx context.Context) ([]model.Lecture, error)
	setStatusFn   func(ctx context.Context, id int64, status string, approved bool) error
}

func (m *mockRepo) Insert(ctx context.Context, l *model.Lecture) (int64, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, l)
	}
	return 1, nil
}
func (m *mockRepo) GetByID(ctx context.Context, id int64) (*model.Lecture, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.Lecture{ID: id}, nil
}
func (m *mockRepo) ListPending(ctx context.Context) ([]model.Lecture, error) {
	if m.listPendingFn != nil {
		return m.listPendingFn(ctx)
	}
	return nil, nil
}
func (m *mockRepo) ListActive(ctx context.Context) ([]model.Lecture, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return nil, nil
}
func (m *mockRepo) SetStatus(ctx context.Context, id int64, status string, approved bool) error {
	if m.setStatusFn != nil {
		return m.setStatusFn(ctx, id, status, approved)
	}
	return nil
}

type mockAudit struct {
	records []string
}

func (m *mockAudit) Record(ctx context.Context, adminID int64, action string, targetID int64) error {
	m.records = append(m.records, action)
	return nil
}

func adminCheck(ids ...int64) func(int64) bool {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(id int64) bool {
		_, ok := set[id]
		return ok
	}
}

func TestSubmit_StoresPendingWithDefaults(t *testing.T) {
	var stored *model.Lecture
	repo := &mockRepo{
		insertFn: func(ctx context.Context, l *model.Lecture) (int64, error) {
			stored = l
			return 42, nil
		},
	}
	svc := New(repo, &mockAudit{}, adminCheck(1))

	l, err := svc.Submit(context.Background(), Proposal{
		LecturerID:    7,
		Title:         "  Intro to Go  ",
		Description:   "Concurrency basics",
		Subject:       "Programming",
		Prerequisites: "None",
		Duration:      "2 hours",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), l.ID)
	assert.Equal(t, "Intro to Go", stored.Title)
	assert.Equal(t, model.LectureStatusPending, stored.Status)
	assert.Equal(t, DefaultProposedTimes, stored.ProposedTimes)
	assert.Equal(t, int64(7), stored.LecturerID)
}

func TestSubmit_KeepsExplicitProposedTimes(t *testing.T) {
	var stored *model.Lecture
	repo := &mockRepo{
		insertFn: func(ctx context.Context, l *model.Lecture) (int64, error) {
			stored = l
			return 1, nil
		},
	}
	svc := New(repo, &mockAudit{}, adminCheck(1))

	_, err := svc.Submit(context.Background(), Proposal{
		LecturerID:    7,
		Title:         "Intro",
		ProposedTimes: "Fridays 16:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fridays 16:00", stored.ProposedTimes)
}

func TestApprove_AdminOnly(t *testing.T) {
	statusWritten := false
	repo := &mockRepo{
		setStatusFn: func(ctx context.Context, id int64, status string, approved bool) error {
			statusWritten = true
			return nil
		},
	}
	audit := &mockAudit{}
	svc := New(repo, audit, adminCheck(1))

	_, err := svc.Approve(context.Background(), 999, 5)
	require.ErrorIs(t, err, model.ErrUnauthorized)
	assert.False(t, statusWritten, "non-admin approval must not touch storage")
	assert.Empty(t, audit.records)
}

// statusRepo tracks one lecture's status updates in memory.
func statusRepo(status string) (*mockRepo, *model.Lecture) {
	l := &model.Lecture{ID: 5, Status: status}
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Lecture, error) {
			copy := *l
			return &copy, nil
		},
		setStatusFn: func(ctx context.Context, id int64, status string, approved bool) error {
			l.Status = status
			l.AdminApproved = approved
			return nil
		},
	}
	return repo, l
}

func TestApprove_SetsActiveAndAudits(t *testing.T) {
	repo, stored := statusRepo(model.LectureStatusPending)
	audit := &mockAudit{}
	svc := New(repo, audit, adminCheck(1))

	l, err := svc.Approve(context.Background(), 1, 5)
	require.NoError(t, err)

	assert.Equal(t, model.LectureStatusActive, stored.Status)
	assert.True(t, stored.AdminApproved)
	assert.Equal(t, model.LectureStatusActive, l.Status)
	assert.Equal(t, []string{model.ActionApproveLecture}, audit.records)
}

func TestReject_SetsRejectedAndAudits(t *testing.T) {
	repo, stored := statusRepo(model.LectureStatusPending)
	audit := &mockAudit{}
	svc := New(repo, audit, adminCheck(1))

	l, err := svc.Reject(context.Background(), 1, 5)
	require.NoError(t, err)

	assert.Equal(t, model.LectureStatusRejected, stored.Status)
	assert.Equal(t, model.LectureStatusRejected, l.Status)
	assert.Equal(t, []string{model.ActionRejectLecture}, audit.records)
}

func TestApprove_StaleButtonKeepsRejection(t *testing.T) {
	repo, stored := statusRepo(model.LectureStatusRejected)
	audit := &mockAudit{}
	svc := New(repo, audit, adminCheck(1))

	l, err := svc.Approve(context.Background(), 1, 5)
	require.NoError(t, err)

	assert.Equal(t, model.LectureStatusRejected, stored.Status)
	assert.Equal(t, model.LectureStatusRejected, l.Status)
	assert.Empty(t, audit.records, "a stale decision must not be audited")
}

func TestReject_AfterApprovalIsNoOp(t *testing.T) {
	repo, stored := statusRepo(model.LectureStatusActive)
	audit := &mockAudit{}
	svc := New(repo, audit, adminCheck(1))

	l, err := svc.Reject(context.Background(), 1, 5)
	require.NoError(t, err)

	assert.Equal(t, model.LectureStatusActive, stored.Status)
	assert.Equal(t, model.LectureStatusActive, l.Status)
	assert.Empty(t, audit.records)
}

func TestDecide_MissingLecture(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Lecture, error) {
			return nil, model.ErrNotFound
		},
	}
	svc := New(repo, &mockAudit{}, adminCheck(1))

	_, err := svc.Approve(context.Background(), 1, 404)
	assert.True(t, model.IsNotFound(err))
}
