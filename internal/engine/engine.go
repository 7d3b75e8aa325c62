package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/quiclick/qc/internal/models"
	"github.com/quiclick/qc/internal/remote"
	"github.com/quiclick/qc/internal/store"
)

// Engine coordinates the mutation queue, the backoff controller, and the
// delta puller over one store and one remote client. All exported methods
// are safe for concurrent use.
type Engine struct {
	store store.Store
	api   remote.API
	sched Scheduler
	log   *slog.Logger

	mu          sync.Mutex
	draining    bool
	cancelRetry func()
	unsubscribe func()

	// autoPush controls whether Enqueue attempts an immediate drain.
	autoPush bool

	// now is swappable in tests.
	now func() time.Time
}

// New builds an engine over the given store and remote client.
func New(s store.Store, api remote.API, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		store:    s,
		api:      api,
		sched:    TimerScheduler{},
		log:      log,
		autoPush: true,
		now:      time.Now,
	}
}

// SetAutoPush disables or re-enables the immediate drain attempt after an
// enqueue. Queued operations still drain on the next explicit sync.
func (e *Engine) SetAutoPush(enabled bool) {
	e.autoPush = enabled
}

// Start subscribes to store writes so queue growth wakes the processor,
// then kicks an initial pull and drain. Safe to call once per engine.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.unsubscribe == nil {
		e.unsubscribe = e.store.Subscribe(func(key store.Key) {
			if key == store.KeyQueue {
				go e.ProcessQueue()
			}
		})
	}
	e.mu.Unlock()

	if err := e.Pull(ctx, false); err != nil {
		e.log.Warn("initial pull failed", "err", err)
	}
	e.ProcessQueue()
}

// Stop cancels the retry timer and the store subscription. Pending queue
// entries stay durable for the next session.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.cancelRetry != nil {
		e.cancelRetry()
		e.cancelRetry = nil
	}
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.mu.Unlock()
}

// Enqueue appends (or coalesces) an operation and wakes the processor.
func (e *Engine) Enqueue(p Payload) error {
	op, err := Append(e.store, p)
	if err != nil {
		return err
	}
	e.log.Debug("enqueued", "op", string(op.Type), "id", op.ID)
	if e.autoPush {
		e.ProcessQueue()
	}
	return nil
}

// Sync runs one full cycle: pull remote changes, then drain the queue.
func (e *Engine) Sync(ctx context.Context) error {
	if err := e.Pull(ctx, false); err != nil {
		return err
	}
	e.ProcessQueue()
	return nil
}

// WaitForLogin polls the server until the session becomes authenticated or
// attempts run out. Each poll is a forced pull, so the first successful one
// also lands the remote dataset. On success the queue drains immediately.
func (e *Engine) WaitForLogin(ctx context.Context, attempts int, interval time.Duration) (*models.User, error) {
	for i := 0; i < attempts; i++ {
		if err := e.Pull(ctx, true); err != nil {
			e.log.Debug("login poll failed", "attempt", i+1, "err", err)
		}
		auth, err := store.AuthState(e.store)
		if err != nil {
			return nil, fmt.Errorf("read auth state: %w", err)
		}
		if auth.Authenticated {
			e.ProcessQueue()
			return auth.User, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
	return nil, fmt.Errorf("login not completed after %d attempts", attempts)
}

// Logout ends the server session and marks the local state unauthenticated.
// A failed server call still logs out locally.
func (e *Engine) Logout(ctx context.Context) error {
	if err := e.api.Logout(ctx); err != nil {
		e.log.Warn("server logout failed", "err", err)
	}
	return store.SetAuthState(e.store, models.AuthState{LastChecked: e.now()})
}
