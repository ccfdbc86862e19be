package scan

import (
	"time"

	infralogger "github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/link-checker/internal/config"
	"github.com/jonesrussell/north-cloud/link-checker/internal/progress"
)

// Option is a functional option for configuring the Orchestrator.
type Option func(*Orchestrator)

// WithBatchSize sets how many links one ProcessQueue call checks.
// Values are clamped to [1,10]. Default: 3
func WithBatchSize(n int) Option {
	return func(o *Orchestrator) {
		o.batchSize = config.ClampBatchSize(n)
	}
}

// WithContinuationDelay sets the delay before the next batch.
// Default: 2 seconds
func WithContinuationDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.continuationDelay = d
	}
}

// WithStartDelay sets the delay between Start and the first batch.
// Default: 1 second
func WithStartDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.startDelay = d
	}
}

// WithStaleAfter sets how long after starting an active scan is reclaimed.
// Default: 30 minutes
func WithStaleAfter(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.staleAfter = d
	}
}

// WithLeaseTTL sets how long a scan stays active without a completed batch.
// Default: 1 hour
func WithLeaseTTL(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.leaseTTL = d
	}
}

// WithDueAfter sets how old a link's last check must be before a scan
// checks it again. Default: 24 hours
func WithDueAfter(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.dueAfter = d
	}
}

// WithManualOnly makes RunScheduledScan a no-op.
func WithManualOnly(manual bool) Option {
	return func(o *Orchestrator) {
		o.manualOnly = manual
	}
}

// WithRecheck configures RecheckBrokenLinks.
// Defaults: 50 links, last checked over 6 hours ago, 500ms apart
func WithRecheck(limit int, minAge, delay time.Duration) Option {
	return func(o *Orchestrator) {
		o.recheckLimit = limit
		o.recheckMinAge = minAge
		o.recheckDelay = delay
	}
}

// WithCache sets the progress and stats cache.
func WithCache(c progress.Cache) Option {
	return func(o *Orchestrator) {
		o.cache = c
	}
}

// WithNotifier sets the scan completion notifier.
func WithNotifier(n Notifier) Option {
	return func(o *Orchestrator) {
		o.notifier = n
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) {
		o.recorder = r
	}
}

// WithLogger sets the logger.
func WithLogger(log infralogger.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = log
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}
