package scan

import (
	"context"
	"time"

	"github.com/jonesrussell/north-cloud/link-checker/internal/discovery"
	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/jonesrussell/north-cloud/link-checker/internal/scan LinkStore,ScanStore,LinkChecker,Discoverer,Notifier
//go:generate mockgen -destination=mocks/scheduler.go -package=mocks github.com/jonesrussell/north-cloud/link-checker/internal/tasks Scheduler

// LinkStore is the link persistence the orchestrator needs.
type LinkStore interface {
	GetLinksToCheck(ctx context.Context, limit int, dueBefore time.Time) ([]*domain.Link, error)
	CountLinksToCheck(ctx context.Context, dueBefore time.Time) (int, error)
	UpdateLinkResult(ctx context.Context, id int64, result domain.CheckResult, checkedAt time.Time) error
	GetLinksForRecheck(ctx context.Context, olderThan time.Time, limit int) ([]*domain.Link, error)
	GetStats(ctx context.Context) (*domain.LinkStats, error)
}

// ScanStore is the scan persistence the orchestrator needs.
type ScanStore interface {
	CreateScan(ctx context.Context, scanType string, startedAt time.Time) (*domain.Scan, error)
	MarkRunning(ctx context.Context, id int64, leaseUntil time.Time) error
	SetTotal(ctx context.Context, id int64, total int) error
	AddCounters(ctx context.Context, id int64, delta domain.ScanCounters, leaseUntil time.Time) (*domain.Scan, error)
	CompleteScan(ctx context.Context, id int64, completedAt time.Time) (*domain.Scan, error)
	CancelScan(ctx context.Context, id int64, completedAt time.Time) error
	FailScan(ctx context.Context, id int64, reason string, completedAt time.Time) error
	CancelAllActive(ctx context.Context, completedAt time.Time) (int, error)
	FailStaleScans(ctx context.Context, cutoff time.Time, reason string, completedAt time.Time) (int, error)
	IsScanRunning(ctx context.Context) (bool, error)
	GetRunningScan(ctx context.Context) (*domain.Scan, error)
	GetActiveScan(ctx context.Context, now time.Time) (*domain.Scan, error)
	GetLatestScan(ctx context.Context) (*domain.Scan, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Scan, error)
}

// LinkChecker probes one URL.
type LinkChecker interface {
	Check(ctx context.Context, rawURL string) domain.CheckResult
}

// Discoverer populates the links table from the content corpus.
type Discoverer interface {
	Discover(ctx context.Context) (*discovery.Result, error)
}

// Notifier announces completed scans.
type Notifier interface {
	PublishScanCompleted(ctx context.Context, scan *domain.Scan) error
}

// Recorder receives scan lifecycle observations.
type Recorder interface {
	RecordScanStarted(scanType string)
	RecordScanFinished(status string)
	RecordBatch(duration time.Duration, pending int)
}
