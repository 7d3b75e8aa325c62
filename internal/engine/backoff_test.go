package engine

import (
	"testing"
	"time"

	"github.com/quiclick/qc/internal/store"
)

func TestBackoffDelayDoublesToCap(t *testing.T) {
	cases := []struct {
		retryCount int
		want       time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{10, 1024 * time.Second},
		{11, 30 * time.Minute}, // 2048s clamps
		{50, 30 * time.Minute},
	}
	for _, c := range cases {
		if got := backoffDelay(c.retryCount); got != c.want {
			t.Errorf("backoffDelay(%d): got %s, want %s", c.retryCount, got, c.want)
		}
	}
}

func TestIncrementBackoffPersistsAndSchedules(t *testing.T) {
	e, s, _, sched := newTestEngine(t)

	e.incrementBackoff()

	state, err := store.SyncState(s)
	if err != nil {
		t.Fatalf("sync state: %v", err)
	}
	if state.Backoff.RetryCount != 1 {
		t.Fatalf("retry count: got %d, want 1", state.Backoff.RetryCount)
	}
	if state.Backoff.NextRetryAt == nil {
		t.Fatal("expected NextRetryAt to be set")
	}
	wantAt := testEpoch.Add(2 * time.Second)
	if !state.Backoff.NextRetryAt.Equal(wantAt) {
		t.Errorf("NextRetryAt: got %s, want %s", state.Backoff.NextRetryAt, wantAt)
	}
	if sched.lastDelay() != 2*time.Second {
		t.Errorf("scheduled delay: got %s, want 2s", sched.lastDelay())
	}

	e.incrementBackoff()
	if sched.lastDelay() != 4*time.Second {
		t.Errorf("second delay: got %s, want 4s", sched.lastDelay())
	}
	if sched.cancelled != 1 {
		t.Errorf("expected previous wake cancelled once, got %d", sched.cancelled)
	}
}

func TestResetBackoffClearsStateAndTimer(t *testing.T) {
	e, s, _, sched := newTestEngine(t)

	e.incrementBackoff()
	e.resetBackoff()

	state, err := store.SyncState(s)
	if err != nil {
		t.Fatalf("sync state: %v", err)
	}
	if state.Backoff.RetryCount != 0 || state.Backoff.NextRetryAt != nil {
		t.Errorf("backoff not cleared: %+v", state.Backoff)
	}
	if sched.cancelled != 1 {
		t.Errorf("expected pending wake cancelled, got %d cancels", sched.cancelled)
	}

	// Resetting again is a no-op and must not re-persist.
	e.resetBackoff()
	if sched.cancelled != 1 {
		t.Errorf("idle reset should not cancel again, got %d", sched.cancelled)
	}
}
