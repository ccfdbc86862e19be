package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	infralogger "github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

const (
	defaultPollInterval = time.Second
	defaultClaimTTL     = 5 * time.Minute
	defaultClaimBatch   = 10
)

// Handler executes one task invocation.
type Handler func(ctx context.Context) error

// Recorder receives one observation per executed task.
type Recorder interface {
	RecordTask(name string, err error)
}

// ClaimStore is the persistence the Runner needs.
type ClaimStore interface {
	Claim(ctx context.Context, token uuid.UUID, now time.Time, ttl time.Duration, limit int) ([]*domain.ScheduledTask, error)
	Complete(ctx context.Context, name string, token uuid.UUID) (bool, error)
}

// Runner claims due tasks and dispatches them to registered handlers, one at
// a time.
type Runner struct {
	store    ClaimStore
	logger   infralogger.Logger
	recorder Recorder
	now      func() time.Time

	pollInterval time.Duration
	claimTTL     time.Duration
	claimBatch   int

	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRunner creates a runner over store.
func NewRunner(store ClaimStore, opts ...RunnerOption) *Runner {
	r := &Runner{
		store:        store,
		logger:       infralogger.NewNop(),
		now:          time.Now,
		pollInterval: defaultPollInterval,
		claimTTL:     defaultClaimTTL,
		claimBatch:   defaultClaimBatch,
		handlers:     make(map[string]Handler),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register binds name to h, replacing any previous handler.
func (r *Runner) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Run polls until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("Task runner started",
		infralogger.Duration("poll_interval", r.pollInterval),
		infralogger.Duration("claim_ttl", r.claimTTL),
	)

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		if _, err := r.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.Error("Task poll failed", infralogger.Error(err))
		}

		select {
		case <-ctx.Done():
			r.logger.Info("Task runner stopping")
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce claims the currently due tasks and runs them. It returns how many
// handlers were invoked.
func (r *Runner) RunOnce(ctx context.Context) (int, error) {
	token := uuid.New()

	claimed, err := r.store.Claim(ctx, token, r.now(), r.claimTTL, r.claimBatch)
	if err != nil {
		return 0, fmt.Errorf("claim tasks: %w", err)
	}

	executed := 0
	for _, task := range claimed {
		if ctx.Err() != nil {
			return executed, ctx.Err()
		}
		if r.execute(ctx, task, token) {
			executed++
		}
	}

	return executed, nil
}

// execute runs one claimed task and reports whether a handler was invoked.
// A failed task keeps its claim and is retried after the claim lapses.
func (r *Runner) execute(ctx context.Context, task *domain.ScheduledTask, token uuid.UUID) bool {
	r.mu.RLock()
	handler, ok := r.handlers[task.Name]
	r.mu.RUnlock()

	log := r.logger.With(
		infralogger.String("task", task.Name),
		infralogger.Int("attempt", task.Attempts),
	)

	if !ok {
		log.Warn("Dropping task with no handler")
		r.complete(ctx, log, task.Name, token)
		return false
	}

	runErr := r.invoke(ctx, handler)
	if r.recorder != nil {
		r.recorder.RecordTask(task.Name, runErr)
	}

	if runErr != nil {
		log.Error("Task failed; it will be retried after its claim expires",
			infralogger.Error(runErr),
			infralogger.Duration("claim_ttl", r.claimTTL),
		)
		return true
	}

	r.complete(ctx, log, task.Name, token)
	return true
}

func (r *Runner) invoke(ctx context.Context, h Handler) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("task panicked: %v", p)
		}
	}()
	return h(ctx)
}

func (r *Runner) complete(ctx context.Context, log infralogger.Logger, name string, token uuid.UUID) {
	deleted, err := r.store.Complete(context.WithoutCancel(ctx), name, token)
	if err != nil {
		log.Error("Failed to complete task", infralogger.Error(err))
		return
	}
	if !deleted {
		log.Debug("Task was re-armed while running")
	}
}
