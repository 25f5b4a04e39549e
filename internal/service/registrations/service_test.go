package registrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecturebot/internal/model"
)

type mockRepo struct {
	insertFn func(ctx context.Context, lectureID, studentID int64) (int64, error)
	byStudFn func(ctx context.Context, studentID int64) ([]model.RegistrationRow, error)
	allFn    func(ctx context.Context) ([]model.RegistrationRow, error)
}

func (m *mockRepo) Insert(ctx context.Context, lectureID, studentID int64) (int64, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, lectureID, studentID)
	}
	return 1, nil
}
func (m *mockRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.RegistrationRow, error) {
	if m.byStudFn != nil {
		return m.byStudFn(ctx, studentID)
	}
	return nil, nil
}
func (m *mockRepo) ListAll(ctx context.Context) ([]model.RegistrationRow, error) {
	if m.allFn != nil {
		return m.allFn(ctx)
	}
	return nil, nil
}

type mockLectures struct {
	getFn func(ctx context.Context, id int64) (*model.Lecture, error)
}

func (m *mockLectures) Get(ctx context.Context, id int64) (*model.Lecture, error) {
	return m.getFn(ctx, id)
}

type mockNotifier struct {
	notified bool
	lecturer int64
}

func (m *mockNotifier) NotifyLecturer(ctx context.Context, lecturerID int64, lecture *model.Lecture, student *model.User) {
	m.notified = true
	m.lecturer = lecturerID
}

func activeLecture(id int64) *model.Lecture {
	return &model.Lecture{ID: id, LecturerID: 77, Title: "Intro", Status: model.LectureStatusActive}
}

func TestRegister_NotifiesLecturer(t *testing.T) {
	repo := &mockRepo{}
	lectures := &mockLectures{
		getFn: func(ctx context.Context, id int64) (*model.Lecture, error) {
			return activeLecture(id), nil
		},
	}
	notifier := &mockNotifier{}
	svc := New(repo, lectures, notifier)

	student := &model.User{TelegramID: 5, FirstName: "Alem"}
	l, err := svc.Register(context.Background(), 3, student)
	require.NoError(t, err)

	assert.Equal(t, int64(3), l.ID)
	assert.True(t, notifier.notified)
	assert.Equal(t, int64(77), notifier.lecturer)
}

func TestRegister_DuplicateIsReportedWithoutNotification(t *testing.T) {
	repo := &mockRepo{
		insertFn: func(ctx context.Context, lectureID, studentID int64) (int64, error) {
			return 0, model.ErrDuplicateRegistration
		},
	}
	lectures := &mockLectures{
		getFn: func(ctx context.Context, id int64) (*model.Lecture, error) {
			return activeLecture(id), nil
		},
	}
	notifier := &mockNotifier{}
	svc := New(repo, lectures, notifier)

	_, err := svc.Register(context.Background(), 3, &model.User{TelegramID: 5})
	require.True(t, model.IsDuplicate(err))
	assert.False(t, notifier.notified, "duplicate must not renotify the lecturer")
}

func TestRegister_RejectsNonActiveLecture(t *testing.T) {
	inserted := false
	repo := &mockRepo{
		insertFn: func(ctx context.Context, lectureID, studentID int64) (int64, error) {
			inserted = true
			return 1, nil
		},
	}
	for _, status := range []string{model.LectureStatusPending, model.LectureStatusRejected} {
		lectures := &mockLectures{
			getFn: func(ctx context.Context, id int64) (*model.Lecture, error) {
				return &model.Lecture{ID: id, Status: status}, nil
			},
		}
		svc := New(repo, lectures, nil)

		_, err := svc.Register(context.Background(), 3, &model.User{TelegramID: 5})
		require.ErrorIs(t, err, model.ErrLectureClosed, "status %s", status)
	}
	assert.False(t, inserted)
}

func TestRegister_MissingLecture(t *testing.T) {
	lectures := &mockLectures{
		getFn: func(ctx context.Context, id int64) (*model.Lecture, error) {
			return nil, model.ErrNotFound
		},
	}
	svc := New(&mockRepo{}, lectures, nil)

	_, err := svc.Register(context.Background(), 404, &model.User{TelegramID: 5})
	assert.True(t, model.IsNotFound(err))
}

func TestForStudent_PassesThrough(t *testing.T) {
	repo := &mockRepo{
		byStudFn: func(ctx context.Context, studentID int64) ([]model.RegistrationRow, error) {
			return []model.RegistrationRow{{ID: 1, LectureTitle: "Intro"}}, nil
		},
	}
	svc := New(repo, &mockLectures{}, nil)

	rows, err := svc.ForStudent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Intro", rows[0].LectureTitle)
}
