package state

import (
	"testing"
	"time"
)

func TestStateTransitions(t *testing.T) {
	m := NewMemoryManager(time.Minute)

	if m.HasState(1) {
		t.Fatal("new user should have no state")
	}
	if got := m.GetState(1); got != StateIdle {
		t.Fatalf("GetState = %q, want %q", got, StateIdle)
	}

	m.SetState(1, State("step_one"))
	if !m.HasState(1) {
		t.Fatal("expected active state after SetState")
	}
	if !m.InProgress(1) {
		t.Fatal("expected InProgress after SetState")
	}
	if got := m.GetState(1); got != State("step_one") {
		t.Fatalf("GetState = %q, want step_one", got)
	}

	m.ClearState(1)
	if m.HasState(1) {
		t.Fatal("ClearState should reset to idle")
	}
}

func TestTempData(t *testing.T) {
	m := NewMemoryManager(time.Minute)

	m.SetTemp(1, "title", "Intro to Go")
	m.SetTemp(1, "lecture_id", int64(42))

	if s, ok := m.GetTempString(1, "title"); !ok || s != "Intro to Go" {
		t.Fatalf("GetTempString = %q, %v", s, ok)
	}
	if v, ok := m.GetTempInt64(1, "lecture_id"); !ok || v != 42 {
		t.Fatalf("GetTempInt64 = %d, %v", v, ok)
	}
	if _, ok := m.GetTempInt64(1, "title"); ok {
		t.Fatal("wrong-typed temp value should not assert")
	}

	m.ClearTemp(1, "title")
	if _, ok := m.GetTemp(1, "title"); ok {
		t.Fatal("ClearTemp should remove the key")
	}
}

func TestClearRemovesSession(t *testing.T) {
	m := NewMemoryManager(time.Minute)

	m.SetState(1, State("step_one"))
	m.SetTemp(1, "title", "x")
	m.Clear(1)

	if m.HasState(1) {
		t.Fatal("Clear should drop the session")
	}
	if _, ok := m.GetTemp(1, "title"); ok {
		t.Fatal("Clear should drop temp data")
	}
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	ttl := time.Minute
	m := NewMemoryManager(ttl)

	m.SetState(1, State("step_one"))
	m.SetState(2, State("step_one"))

	// Only stale sessions go.
	if n := m.Sweep(time.Now()); n != 0 {
		t.Fatalf("Sweep of fresh sessions evicted %d", n)
	}

	future := time.Now().Add(ttl + time.Second)
	if n := m.Sweep(future); n != 2 {
		t.Fatalf("Sweep = %d, want 2", n)
	}
	if m.HasState(1) || m.HasState(2) {
		t.Fatal("evicted sessions should be gone")
	}
}

func TestActivityDefersEviction(t *testing.T) {
	ttl := time.Minute
	m := NewMemoryManager(ttl)
	mm := m.(*memoryManager)

	m.SetState(1, State("step_one"))
	m.SetState(2, State("step_one"))

	// Backdate user 2 past the idle window; user 1 stays fresh.
	mm.mu.Lock()
	mm.sessions[2].LastActive = time.Now().Add(-ttl - time.Second)
	mm.mu.Unlock()

	if n := m.Sweep(time.Now()); n != 1 {
		t.Fatalf("Sweep = %d, want 1", n)
	}
	if !m.HasState(1) {
		t.Fatal("active session must survive the sweep")
	}
	if m.HasState(2) {
		t.Fatal("idle session must be evicted")
	}
}

func TestDefaultTTLFallback(t *testing.T) {
	m := NewMemoryManager(0)
	mm, ok := m.(*memoryManager)
	if !ok {
		t.Fatalf("unexpected manager type %T", m)
	}
	if mm.ttl != DefaultTTL {
		t.Fatalf("ttl = %v, want %v", mm.ttl, DefaultTTL)
	}
}
