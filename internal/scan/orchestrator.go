// Package scan drives link scans through their lifecycle.
//
// A scan is processed in short batches. Each ProcessQueue call checks a few
// due links, persists the verdicts and the scan counters, and re-arms itself
// through the task scheduler. An interrupted process loses at most the batch
// in flight; its links have no new last_check and are selected again.
//
// The active scan is the running row whose lease_expires_at is in the
// future. Every batch renews the lease and every terminal transition clears
// it, so there is no second copy of "the current scan" to drift.
package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	infralogger "github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/link-checker/internal/database"
	"github.com/jonesrussell/north-cloud/link-checker/internal/discovery"
	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
	"github.com/jonesrussell/north-cloud/link-checker/internal/progress"
	"github.com/jonesrussell/north-cloud/link-checker/internal/tasks"
)

// Task names handled by the orchestrator.
const (
	TaskGroup        = "linkcheck"
	TaskProcessQueue = TaskGroup + ".process_queue"
)

// StaleScanReason is stored on scans reclaimed by stale cleanup.
const StaleScanReason = "Scan timed out: no completion within the stale threshold"

// DefaultStaleAfter is how long an active scan may run before cleanup fails it.
const DefaultStaleAfter = 30 * time.Minute

// StaleCutoff is the start time before which an active scan counts as stale.
// The comparison is strict: a scan started exactly at the cutoff is kept.
func StaleCutoff(now time.Time, staleAfter time.Duration) time.Time {
	return now.Add(-staleAfter)
}

const (
	defaultBatchSize         = 3
	defaultContinuationDelay = 2 * time.Second
	defaultStartDelay        = time.Second
	defaultLeaseTTL          = time.Hour
	defaultDueAfter          = 24 * time.Hour
	defaultRecheckLimit      = 50
	defaultRecheckMinAge     = 6 * time.Hour
	defaultRecheckDelay      = 500 * time.Millisecond
)

// Orchestrator implements the scan state machine.
type Orchestrator struct {
	links      LinkStore
	scans      ScanStore
	checker    LinkChecker
	discoverer Discoverer
	scheduler  tasks.Scheduler
	cache      progress.Cache
	notifier   Notifier
	recorder   Recorder
	logger     infralogger.Logger
	now        func() time.Time

	batchSize         int
	continuationDelay time.Duration
	startDelay        time.Duration
	staleAfter        time.Duration
	leaseTTL          time.Duration
	dueAfter          time.Duration
	manualOnly        bool

	recheckLimit  int
	recheckMinAge time.Duration
	recheckDelay  time.Duration
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(
	links LinkStore,
	scans ScanStore,
	checker LinkChecker,
	discoverer Discoverer,
	scheduler tasks.Scheduler,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		links:             links,
		scans:             scans,
		checker:           checker,
		discoverer:        discoverer,
		scheduler:         scheduler,
		cache:             progress.NopCache{},
		logger:            infralogger.NewNop(),
		now:               time.Now,
		batchSize:         defaultBatchSize,
		continuationDelay: defaultContinuationDelay,
		startDelay:        defaultStartDelay,
		staleAfter:        DefaultStaleAfter,
		leaseTTL:          defaultLeaseTTL,
		dueAfter:          defaultDueAfter,
		recheckLimit:      defaultRecheckLimit,
		recheckMinAge:     defaultRecheckMinAge,
		recheckDelay:      defaultRecheckDelay,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// RegisterTasks binds the orchestrator's deferred tasks to r.
func (o *Orchestrator) RegisterTasks(r *tasks.Runner) {
	r.Register(TaskProcessQueue, o.ProcessQueue)
}

// Start creates a scan, runs discovery, and schedules the first batch.
// It returns ErrScanAlreadyRunning while another scan is active.
func (o *Orchestrator) Start(ctx context.Context, scanType string) (*domain.Scan, error) {
	running, err := o.scans.IsScanRunning(ctx)
	if err != nil {
		return nil, fmt.Errorf("check running scan: %w", err)
	}
	if running {
		return nil, ErrScanAlreadyRunning
	}

	now := o.now()
	scan, err := o.scans.CreateScan(ctx, scanType, now)
	if err != nil {
		if errors.Is(err, database.ErrActiveScanExists) {
			return nil, ErrScanAlreadyRunning
		}
		return nil, fmt.Errorf("%w: %w", ErrScanCreateFailed, err)
	}

	log := o.logger.With(infralogger.Int64("scan_id", scan.ID), infralogger.String("scan_type", scanType))

	leaseUntil := now.Add(o.leaseTTL)
	if err = o.scans.MarkRunning(ctx, scan.ID, leaseUntil); err != nil {
		o.fail(ctx, log, scan.ID, "Failed to start scan")
		return nil, fmt.Errorf("mark scan %d running: %w", scan.ID, err)
	}
	scan.Status = domain.ScanStatusRunning
	scan.LeaseExpiresAt = &leaseUntil

	if o.recorder != nil {
		o.recorder.RecordScanStarted(scanType)
	}
	log.Info("Scan started")

	found, err := o.discoverer.Discover(ctx)
	if err != nil {
		o.fail(ctx, log, scan.ID, "Link discovery failed: "+err.Error())
		return nil, fmt.Errorf("discover links: %w", err)
	}
	if found == nil {
		found = &discovery.Result{}
	}

	total, err := o.links.CountLinksToCheck(ctx, o.dueBefore(scan))
	if err != nil {
		o.fail(ctx, log, scan.ID, "Failed to count links")
		return nil, fmt.Errorf("count links to check: %w", err)
	}
	if err = o.scans.SetTotal(ctx, scan.ID, total); err != nil {
		o.fail(ctx, log, scan.ID, "Failed to record total")
		return nil, fmt.Errorf("set scan total: %w", err)
	}
	scan.TotalLinks = total

	if err = o.scheduler.ScheduleSingle(ctx, now.Add(o.startDelay), TaskProcessQueue); err != nil {
		o.fail(ctx, log, scan.ID, "Failed to schedule processing")
		return nil, fmt.Errorf("schedule first batch: %w", err)
	}

	o.cache.SetProgress(ctx, domain.ProgressFromScan(scan))
	o.cache.ClearStats(ctx)

	log.Info("Scan queued",
		infralogger.Int("total_links", total),
		infralogger.Int("discovered", found.Found),
		infralogger.Int("new_links", found.Created),
	)

	return scan, nil
}

// ProcessQueue checks one batch of due links for the active scan. It is a
// no-op when no scan is active, so duplicate or late invocations are safe.
func (o *Orchestrator) ProcessQueue(ctx context.Context) error {
	started := o.now()

	scan, err := o.scans.GetActiveScan(ctx, started)
	if err != nil {
		return fmt.Errorf("get active scan: %w", err)
	}
	if scan == nil {
		o.logger.Debug("No active scan; nothing to process")
		return nil
	}

	dueBefore := o.dueBefore(scan)
	log := o.logger.With(infralogger.Int64("scan_id", scan.ID))

	links, err := o.links.GetLinksToCheck(ctx, o.batchSize, dueBefore)
	if err != nil {
		return fmt.Errorf("get links to check: %w", err)
	}
	if len(links) == 0 {
		return o.CompleteScan(ctx, scan.ID)
	}

	delta := o.checkBatch(ctx, log, links)

	updated, err := o.scans.AddCounters(ctx, scan.ID, delta, o.now().Add(o.leaseTTL))
	if errors.Is(err, database.ErrScanNotActive) {
		log.Info("Scan ended while its batch was in flight")
		return nil
	}
	if err != nil {
		return fmt.Errorf("add scan counters: %w", err)
	}
	o.cache.SetProgress(ctx, domain.ProgressFromScan(updated))

	remaining, err := o.links.CountLinksToCheck(ctx, dueBefore)
	if err != nil {
		return fmt.Errorf("count remaining links: %w", err)
	}

	if o.recorder != nil {
		o.recorder.RecordBatch(o.now().Sub(started), remaining)
	}
	log.Debug("Batch processed",
		infralogger.Int("checked", delta.Checked),
		infralogger.Int("broken", delta.Broken),
		infralogger.Int("warnings", delta.Warnings),
		infralogger.Int("remaining", remaining),
	)

	if remaining == 0 {
		return o.CompleteScan(ctx, scan.ID)
	}

	if err = o.scheduler.ScheduleSingle(ctx, o.now().Add(o.continuationDelay), TaskProcessQueue); err != nil {
		return fmt.Errorf("schedule next batch: %w", err)
	}
	return nil
}

// checkBatch probes links in order and persists each verdict. A link whose
// verdict cannot be saved is not counted and stays due.
func (o *Orchestrator) checkBatch(ctx context.Context, log infralogger.Logger, links []*domain.Link) domain.ScanCounters {
	var delta domain.ScanCounters

	for _, link := range links {
		if ctx.Err() != nil {
			break
		}

		result := o.checker.Check(ctx, link.URL)
		if err := o.links.UpdateLinkResult(ctx, link.ID, result, o.now()); err != nil {
			log.Warn("Failed to save link result",
				infralogger.Int64("link_id", link.ID),
				infralogger.Error(err),
			)
			continue
		}

		delta.Checked++
		switch {
		case result.IsBroken:
			delta.Broken++
		case result.IsWarning:
			delta.Warnings++
		}
	}

	return delta
}

// CompleteScan finalizes a running scan. Completing a scan that is no longer
// running is a no-op.
func (o *Orchestrator) CompleteScan(ctx context.Context, id int64) error {
	scan, err := o.scans.CompleteScan(ctx, id, o.now())
	if errors.Is(err, database.ErrScanNotActive) {
		o.logger.Debug("Scan already finalized", infralogger.Int64("scan_id", id))
		return nil
	}
	if err != nil {
		return fmt.Errorf("complete scan %d: %w", id, err)
	}

	o.cache.ClearProgress(ctx)
	o.cache.ClearStats(ctx)
	if o.recorder != nil {
		o.recorder.RecordScanFinished(string(domain.ScanStatusCompleted))
	}

	o.logger.Info("Scan completed",
		infralogger.Int64("scan_id", scan.ID),
		infralogger.Int("total_links", scan.TotalLinks),
		infralogger.Int("checked_links", scan.CheckedLinks),
		infralogger.Int("broken_links", scan.BrokenLinks),
		infralogger.Int("warning_links", scan.WarningLinks),
	)

	if scan.BrokenLinks > 0 && o.notifier != nil {
		if notifyErr := o.notifier.PublishScanCompleted(ctx, scan); notifyErr != nil {
			o.logger.Warn("Failed to publish scan completion",
				infralogger.Int64("scan_id", scan.ID),
				infralogger.Error(notifyErr),
			)
		}
	}

	return nil
}

// StopScan cancels the active scan. It reports false when nothing was
// running. A batch already in flight finishes but is not counted.
func (o *Orchestrator) StopScan(ctx context.Context) (bool, error) {
	now := o.now()

	scan, err := o.scans.GetActiveScan(ctx, now)
	if err != nil {
		return false, fmt.Errorf("get active scan: %w", err)
	}
	if scan == nil {
		if scan, err = o.scans.GetRunningScan(ctx); err != nil {
			return false, fmt.Errorf("get running scan: %w", err)
		}
	}
	if !CanStop(scan) {
		return false, nil
	}

	if err = o.scans.CancelScan(ctx, scan.ID, now); err != nil {
		if errors.Is(err, database.ErrScanNotActive) {
			return false, nil
		}
		return false, fmt.Errorf("cancel scan %d: %w", scan.ID, err)
	}

	o.cancelContinuation(ctx)
	o.cache.ClearProgress(ctx)
	if o.recorder != nil {
		o.recorder.RecordScanFinished(string(domain.ScanStatusCancelled))
	}

	o.logger.Info("Scan stopped",
		infralogger.Int64("scan_id", scan.ID),
		infralogger.Int("checked_links", scan.CheckedLinks),
	)
	return true, nil
}

// ForceStopScan cancels every pending and running scan, clears cached state
// and removes every queued continuation. It returns how many scans were
// cancelled.
func (o *Orchestrator) ForceStopScan(ctx context.Context) (int, error) {
	n, err := o.scans.CancelAllActive(ctx, o.now())
	if err != nil {
		return 0, fmt.Errorf("cancel active scans: %w", err)
	}

	o.cache.ClearProgress(ctx)
	o.cache.ClearStats(ctx)

	if err = o.scheduler.CancelGroup(ctx, TaskGroup); err != nil {
		return n, fmt.Errorf("cancel %s tasks: %w", TaskGroup, err)
	}

	if o.recorder != nil {
		for range n {
			o.recorder.RecordScanFinished(string(domain.ScanStatusCancelled))
		}
	}

	o.logger.Warn("Force-stopped scans", infralogger.Int("cancelled", n))
	return n, nil
}

// CleanupStaleScans fails every active scan started longer than the stale
// threshold ago.
func (o *Orchestrator) CleanupStaleScans(ctx context.Context) (int, error) {
	now := o.now()

	n, err := o.scans.FailStaleScans(ctx, StaleCutoff(now, o.staleAfter), StaleScanReason, now)
	if err != nil {
		return 0, fmt.Errorf("fail stale scans: %w", err)
	}
	if n == 0 {
		return 0, nil
	}

	o.cache.ClearProgress(ctx)
	o.cancelContinuation(ctx)
	if o.recorder != nil {
		for range n {
			o.recorder.RecordScanFinished(string(domain.ScanStatusFailed))
		}
	}

	o.logger.Warn("Reclaimed stale scans",
		infralogger.Int("failed", n),
		infralogger.Duration("stale_after", o.staleAfter),
	)
	return n, nil
}

// GetProgress returns the polling snapshot. A stale active scan is reclaimed
// on read and reported as idle.
func (o *Orchestrator) GetProgress(ctx context.Context) (domain.Progress, error) {
	if cached := o.cache.GetProgress(ctx); cached != nil {
		if cached.StartedAt == nil || !o.isStale(*cached.StartedAt) {
			return *cached, nil
		}
		o.cache.ClearProgress(ctx)
	}

	scan, err := o.scans.GetLatestScan(ctx)
	if err != nil {
		return domain.Progress{}, fmt.Errorf("get latest scan: %w", err)
	}
	if scan == nil || isStaleFailure(scan) {
		return domain.IdleProgress(), nil
	}

	if scan.Status.IsActive() && o.isStale(scan.StartedAt) {
		if _, err = o.CleanupStaleScans(ctx); err != nil {
			return domain.Progress{}, err
		}
		return domain.IdleProgress(), nil
	}

	snapshot := domain.ProgressFromScan(scan)
	if scan.Status.IsActive() {
		o.cache.SetProgress(ctx, snapshot)
	}
	return snapshot, nil
}

// isStale reports whether an active scan started at startedAt is past the
// stale cutoff used by CleanupStaleScans.
func (o *Orchestrator) isStale(startedAt time.Time) bool {
	return startedAt.Before(StaleCutoff(o.now(), o.staleAfter))
}

// RunScheduledScan starts a scheduled scan unless scanning is manual-only.
// An already running scan is not an error.
func (o *Orchestrator) RunScheduledScan(ctx context.Context) error {
	if o.manualOnly {
		o.logger.Debug("Scheduled scan skipped; manual-only mode")
		return nil
	}

	_, err := o.Start(ctx, domain.ScanTypeScheduled)
	if errors.Is(err, ErrScanAlreadyRunning) {
		o.logger.Info("Scheduled scan skipped; a scan is already running")
		return nil
	}
	return err
}

// History lists past scans, newest first.
func (o *Orchestrator) History(ctx context.Context, limit, offset int) ([]*domain.Scan, error) {
	return o.scans.List(ctx, limit, offset)
}

// Stats returns corpus-wide link counts, cached between scans.
func (o *Orchestrator) Stats(ctx context.Context) (*domain.LinkStats, error) {
	if cached := o.cache.GetStats(ctx); cached != nil {
		return cached, nil
	}

	stats, err := o.links.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get link stats: %w", err)
	}
	o.cache.SetStats(ctx, *stats)
	return stats, nil
}

// InvalidateStats drops cached stats after a change made outside a scan,
// such as dismissing or rechecking a single link.
func (o *Orchestrator) InvalidateStats(ctx context.Context) {
	o.cache.ClearStats(ctx)
}

// dueBefore is fixed per scan, so links checked during the scan are never
// selected again by it.
func (o *Orchestrator) dueBefore(scan *domain.Scan) time.Time {
	return scan.StartedAt.Add(-o.dueAfter)
}

func (o *Orchestrator) fail(ctx context.Context, log infralogger.Logger, id int64, reason string) {
	if err := o.scans.FailScan(context.WithoutCancel(ctx), id, reason, o.now()); err != nil {
		log.Error("Failed to mark scan failed", infralogger.String("reason", reason), infralogger.Error(err))
	}
	o.cache.ClearProgress(ctx)
	if o.recorder != nil {
		o.recorder.RecordScanFinished(string(domain.ScanStatusFailed))
	}
	log.Error("Scan failed", infralogger.String("reason", reason))
}

func (o *Orchestrator) cancelContinuation(ctx context.Context) {
	if err := o.scheduler.Cancel(ctx, TaskProcessQueue); err != nil {
		o.logger.Warn("Failed to cancel queued batch", infralogger.Error(err))
	}
}

func isStaleFailure(s *domain.Scan) bool {
	return s.Status == domain.ScanStatusFailed && s.ErrorMessage != nil && *s.ErrorMessage == StaleScanReason
}
