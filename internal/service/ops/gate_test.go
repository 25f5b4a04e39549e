package ops

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecturebot/internal/model"
)

type mockAudit struct {
	recordFn func(ctx context.Context, adminID int64, action string, targetID int64) error
}

func (m *mockAudit) Record(ctx context.Context, adminID int64, action string, targetID int64) error {
	if m.recordFn != nil {
		return m.recordFn(ctx, adminID, action, targetID)
	}
	return nil
}

func TestGate_StartsRunning(t *testing.T) {
	g := NewGate([]int64{1}, nil)

	assert.False(t, g.IsHalted())
	assert.Equal(t, 1, g.AdminCount())
}

func TestGate_IsAdmin(t *testing.T) {
	g := NewGate([]int64{10, 20}, nil)

	assert.True(t, g.IsAdmin(10))
	assert.True(t, g.IsAdmin(20))
	assert.False(t, g.IsAdmin(30))
}

func TestGate_SetHalted_AdminOnly(t *testing.T) {
	g := NewGate([]int64{1}, nil)

	err := g.SetHalted(context.Background(), true, 999)
	require.ErrorIs(t, err, model.ErrUnauthorized)
	assert.False(t, g.IsHalted(), "rejected halt must not flip the flag")
}

func TestGate_SetHalted_RecordsAudit(t *testing.T) {
	var gotAction string
	var gotAdmin int64
	audit := &mockAudit{
		recordFn: func(ctx context.Context, adminID int64, action string, targetID int64) error {
			gotAction = action
			gotAdmin = adminID
			return nil
		},
	}
	g := NewGate([]int64{1}, audit)

	require.NoError(t, g.SetHalted(context.Background(), true, 1))
	assert.True(t, g.IsHalted())
	assert.Equal(t, model.ActionHaltService, gotAction)
	assert.Equal(t, int64(1), gotAdmin)

	require.NoError(t, g.SetHalted(context.Background(), false, 1))
	assert.False(t, g.IsHalted())
	assert.Equal(t, model.ActionResumeService, gotAction)
}

func TestGate_SetHalted_AuditFailureDoesNotUndoFlag(t *testing.T) {
	audit := &mockAudit{
		recordFn: func(ctx context.Context, adminID int64, action string, targetID int64) error {
			return errors.New("db down")
		},
	}
	g := NewGate([]int64{1}, audit)

	require.NoError(t, g.SetHalted(context.Background(), true, 1))
	assert.True(t, g.IsHalted())
}

func TestGate_ResumeWorksWhileHalted(t *testing.T) {
	g := NewGate([]int64{1}, nil)

	require.NoError(t, g.SetHalted(context.Background(), true, 1))
	require.True(t, g.IsHalted())

	require.NoError(t, g.SetHalted(context.Background(), false, 1))
	assert.False(t, g.IsHalted())
}
