package engine

import (
	"time"

	"github.com/quiclick/qc/internal/models"
	"github.com/quiclick/qc/internal/store"
)

const (
	backoffBase = 1 * time.Second
	backoffCap  = 30 * time.Minute
)

// Scheduler abstracts the single cancellable wake timer so the backoff
// controller is independent of real clocks. Schedule runs fn after d on its
// own goroutine; the returned cancel stops a fire that has not happened yet.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler is the production Scheduler.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(d time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// backoffDelay computes the wake delay for a retry count, doubling from the
// base and capped at thirty minutes.
func backoffDelay(retryCount int) time.Duration {
	d := backoffBase
	for i := 0; i < retryCount; i++ {
		d *= 2
		if d >= backoffCap {
			return backoffCap
		}
	}
	return d
}

// incrementBackoff bumps the retry count, persists the next retry instant,
// and schedules a single wake that re-enters the queue processor. A new
// schedule supersedes any outstanding one.
func (e *Engine) incrementBackoff() {
	state, err := store.SyncState(e.store)
	if err != nil {
		e.log.Warn("backoff: read sync state", "err", err)
	}
	state.Backoff.RetryCount++
	delay := backoffDelay(state.Backoff.RetryCount)
	at := e.now().Add(delay)
	state.Backoff.NextRetryAt = &at
	if err := store.SetSyncState(e.store, state); err != nil {
		e.log.Warn("backoff: persist sync state", "err", err)
	}

	e.mu.Lock()
	if e.cancelRetry != nil {
		e.cancelRetry()
	}
	e.cancelRetry = e.sched.Schedule(delay, func() {
		e.log.Debug("retry timer fired")
		e.ProcessQueue()
	})
	e.mu.Unlock()

	e.log.Warn("backoff scheduled", "retry", state.Backoff.RetryCount, "delay", delay)
}

// resetBackoff clears the retry state and cancels any pending wake.
func (e *Engine) resetBackoff() {
	state, err := store.SyncState(e.store)
	if err != nil {
		e.log.Warn("backoff: read sync state", "err", err)
	}
	if state.Backoff.RetryCount != 0 || state.Backoff.NextRetryAt != nil {
		state.Backoff = models.Backoff{}
		if err := store.SetSyncState(e.store, state); err != nil {
			e.log.Warn("backoff: persist sync state", "err", err)
		}
	}

	e.mu.Lock()
	if e.cancelRetry != nil {
		e.cancelRetry()
		e.cancelRetry = nil
	}
	e.mu.Unlock()
}
