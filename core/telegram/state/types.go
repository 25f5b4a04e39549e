package state

import (
	"context"
	"time"

	tele "gopkg.in/telebot.v4"
)

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
)

// Session stores conversation state and temporary data for a user.
type Session struct {
	State    State
	TempData map[string]interface{}
	// LastActive is updated on every read or mutation and drives TTL eviction.
	LastActive time.Time
}

// Manager orchestrates user sessions and FSM state transitions.
type Manager interface {
	Get(userID int64) *Session

	SetState(userID int64, st State)
	GetState(userID int64) State
	HasState(userID int64) bool
	ClearState(userID int64)

	SetTemp(userID int64, key string, value interface{})
	GetTemp(userID int64, key string) (interface{}, bool)
	GetTempString(userID int64, key string) (string, bool)
	GetTempInt64(userID int64, key string) (int64, bool)
	ClearTemp(userID int64, key string)

	Clear(userID int64)
	InProgress(userID int64) bool

	// Sweep evicts sessions idle longer than the TTL and returns the count.
	Sweep(now time.Time) int
	// StartSweeper runs Sweep every interval until ctx is done.
	StartSweeper(ctx context.Context, interval time.Duration)

	ManagerHandler(c tele.Context) error
}
