package registrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecturebot/internal/model"
	"lecturebot/internal/service/lectures"
)

// memLectureRepo is a map-backed lectures.Repository for flow tests.
type memLectureRepo struct {
	nextID int64
	rows   map[int64]*model.Lecture
}

func newMemLectureRepo() *memLectureRepo {
	return &memLectureRepo{nextID: 1, rows: make(map[int64]*model.Lecture)}
}

func (m *memLectureRepo) Insert(ctx context.Context, l *model.Lecture) (int64, error) {
	id := m.nextID
	m.nextID++
	cp := *l
	cp.ID = id
	m.rows[id] = &cp
	return id, nil
}

func (m *memLectureRepo) GetByID(ctx context.Context, id int64) (*model.Lecture, error) {
	l, ok := m.rows[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memLectureRepo) ListPending(ctx context.Context) ([]model.Lecture, error) {
	var out []model.Lecture
	for _, l := range m.rows {
		if l.Status == model.LectureStatusPending {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memLectureRepo) ListActive(ctx context.Context) ([]model.Lecture, error) {
	var out []model.Lecture
	for _, l := range m.rows {
		if l.Status == model.LectureStatusActive && l.AdminApproved {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memLectureRepo) SetStatus(ctx context.Context, id int64, status string, approved bool) error {
	l, ok := m.rows[id]
	if !ok {
		return model.ErrNotFound
	}
	l.Status = status
	l.AdminApproved = approved
	return nil
}

type nopAudit struct{}

func (nopAudit) Record(ctx context.Context, adminID int64, action string, targetID int64) error {
	return nil
}

func TestLifecycle_SubmitApproveRegisterNotify(t *testing.T) {
	ctx := context.Background()
	admin := func(id int64) bool { return id == 1 }

	lectureSvc := lectures.New(newMemLectureRepo(), nopAudit{}, admin)

	seen := make(map[[2]int64]struct{})
	regRepo := &mockRepo{
		insertFn: func(ctx context.Context, lectureID, studentID int64) (int64, error) {
			key := [2]int64{lectureID, studentID}
			if _, dup := seen[key]; dup {
				return 0, model.ErrDuplicateRegistration
			}
			seen[key] = struct{}{}
			return int64(len(seen)), nil
		},
	}
	notifier := &mockNotifier{}
	regSvc := New(regRepo, lectureSvc, notifier)

	l, err := lectureSvc.Submit(ctx, lectures.Proposal{
		LecturerID: 77,
		Title:      "Intro to Go",
		Subject:    "Programming",
		Duration:   "2 hours",
	})
	require.NoError(t, err)
	assert.Equal(t, model.LectureStatusPending, l.Status)
	assert.Equal(t, lectures.DefaultProposedTimes, l.ProposedTimes)

	// Pending lectures are closed to registration.
	student := &model.User{TelegramID: 5, FirstName: "Alem"}
	_, err = regSvc.Register(ctx, l.ID, student)
	require.ErrorIs(t, err, model.ErrLectureClosed)
	assert.False(t, notifier.notified)

	approved, err := lectureSvc.Approve(ctx, 1, l.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LectureStatusActive, approved.Status)
	assert.True(t, approved.AdminApproved)

	got, err := regSvc.Register(ctx, l.ID, student)
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)
	assert.True(t, notifier.notified)
	assert.Equal(t, int64(77), notifier.lecturer)

	// A second attempt by the same student reports the conflict.
	_, err = regSvc.Register(ctx, l.ID, student)
	assert.True(t, model.IsDuplicate(err))
}
