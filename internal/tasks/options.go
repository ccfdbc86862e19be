package tasks

import (
	"time"

	infralogger "github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
)

// RunnerOption is a functional option for configuring the Runner.
type RunnerOption func(*Runner)

// WithPollInterval sets how often the runner looks for due tasks.
// Default: 1 second
func WithPollInterval(interval time.Duration) RunnerOption {
	return func(r *Runner) {
		r.pollInterval = interval
	}
}

// WithClaimTTL sets how long a claimed task is hidden from other runners.
// A task whose handler fails is retried once the claim lapses.
// Default: 5 minutes
func WithClaimTTL(ttl time.Duration) RunnerOption {
	return func(r *Runner) {
		r.claimTTL = ttl
	}
}

// WithClaimBatch sets how many due tasks are claimed per poll.
// Default: 10
func WithClaimBatch(n int) RunnerOption {
	return func(r *Runner) {
		r.claimBatch = n
	}
}

// WithRecorder reports every task execution.
func WithRecorder(rec Recorder) RunnerOption {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithLogger sets the runner's logger.
func WithLogger(log infralogger.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = log
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		r.now = now
	}
}
