package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

const (
	defaultScanListLimit = 20

	scanSelectColumns = `id, scan_type, status, total_links, checked_links, broken_links,
		warning_links, started_at, completed_at, lease_expires_at, error_message`
)

// ScanRepository handles database operations for scans.
//
// Every terminal transition clears lease_expires_at, so a running scan with
// an unexpired lease is the active scan.
type ScanRepository struct {
	db *sqlx.DB
}

// NewScanRepository creates a new scan repository.
func NewScanRepository(db *sqlx.DB) *ScanRepository {
	return &ScanRepository{db: db}
}

// CreateScan inserts a pending scan. ErrActiveScanExists is returned when
// another scan is already pending or running.
func (r *ScanRepository) CreateScan(ctx context.Context, scanType string, startedAt time.Time) (*domain.Scan, error) {
	query := `
		INSERT INTO scans (scan_type, status, started_at)
		VALUES ($1, 'pending', $2)
		RETURNING ` + scanSelectColumns

	var scan domain.Scan
	if err := r.db.GetContext(ctx, &scan, query, scanType, startedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrActiveScanExists
		}
		return nil, fmt.Errorf("failed to create scan: %w", err)
	}

	return &scan, nil
}

// MarkRunning moves a pending scan to running and takes the lease.
func (r *ScanRepository) MarkRunning(ctx context.Context, id int64, leaseUntil time.Time) error {
	query := `
		UPDATE scans
		SET status = 'running', lease_expires_at = $1
		WHERE id = $2 AND status = 'pending'
	`

	result, execErr := r.db.ExecContext(ctx, query, leaseUntil, id)
	if err := execRequireRows(result, execErr, ErrScanNotActive); err != nil {
		return fmt.Errorf("failed to mark scan %d running: %w", id, err)
	}

	return nil
}

// SetTotal records the number of links the scan will check.
func (r *ScanRepository) SetTotal(ctx context.Context, id int64, total int) error {
	query := `UPDATE scans SET total_links = $1 WHERE id = $2 AND status = 'running'`

	result, execErr := r.db.ExecContext(ctx, query, total, id)
	if err := execRequireRows(result, execErr, ErrScanNotActive); err != nil {
		return fmt.Errorf("failed to set total for scan %d: %w", id, err)
	}

	return nil
}

// AddCounters atomically adds a batch's counts to a running scan, renews its
// lease, and returns the updated row.
func (r *ScanRepository) AddCounters(
	ctx context.Context, id int64, delta domain.ScanCounters, leaseUntil time.Time,
) (*domain.Scan, error) {
	query := `
		UPDATE scans
		SET checked_links = checked_links + $1,
			broken_links = broken_links + $2,
			warning_links = warning_links + $3,
			lease_expires_at = $4
		WHERE id = $5 AND status = 'running'
		RETURNING ` + scanSelectColumns

	var scan domain.Scan
	err := r.db.GetContext(ctx, &scan, query, delta.Checked, delta.Broken, delta.Warnings, leaseUntil, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScanNotActive
		}
		return nil, fmt.Errorf("failed to add counters to scan %d: %w", id, err)
	}

	return &scan, nil
}

// CompleteScan finalizes a running scan. ErrScanNotActive means it was
// already finalized, stopped, or reclaimed.
func (r *ScanRepository) CompleteScan(ctx context.Context, id int64, completedAt time.Time) (*domain.Scan, error) {
	query := `
		UPDATE scans
		SET status = 'completed', completed_at = $1, lease_expires_at = NULL
		WHERE id = $2 AND status = 'running'
		RETURNING ` + scanSelectColumns

	var scan domain.Scan
	if err := r.db.GetContext(ctx, &scan, query, completedAt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScanNotActive
		}
		return nil, fmt.Errorf("failed to complete scan %d: %w", id, err)
	}

	return &scan, nil
}

// CancelScan cancels one pending or running scan.
func (r *ScanRepository) CancelScan(ctx context.Context, id int64, completedAt time.Time) error {
	query := `
		UPDATE scans
		SET status = 'cancelled', completed_at = $1, lease_expires_at = NULL
		WHERE id = $2 AND status IN ('pending', 'running')
	`

	result, execErr := r.db.ExecContext(ctx, query, completedAt, id)
	if err := execRequireRows(result, execErr, ErrScanNotActive); err != nil {
		return fmt.Errorf("failed to cancel scan %d: %w", id, err)
	}

	return nil
}

// FailScan marks one pending or running scan failed.
func (r *ScanRepository) FailScan(ctx context.Context, id int64, reason string, completedAt time.Time) error {
	query := `
		UPDATE scans
		SET status = 'failed', completed_at = $1, lease_expires_at = NULL, error_message = $2
		WHERE id = $3 AND status IN ('pending', 'running')
	`

	result, execErr := r.db.ExecContext(ctx, query, completedAt, reason, id)
	if err := execRequireRows(result, execErr, ErrScanNotActive); err != nil {
		return fmt.Errorf("failed to fail scan %d: %w", id, err)
	}

	return nil
}

// CancelAllActive cancels every pending and running scan and returns how many
// were touched.
func (r *ScanRepository) CancelAllActive(ctx context.Context, completedAt time.Time) (int, error) {
	query := `
		UPDATE scans
		SET status = 'cancelled', completed_at = $1, lease_expires_at = NULL
		WHERE status IN ('pending', 'running')
	`

	n, err := execRowsAffected(r.db.ExecContext(ctx, query, completedAt))
	if err != nil {
		return 0, fmt.Errorf("failed to cancel active scans: %w", err)
	}

	return n, nil
}

// FailStaleScans fails every pending or running scan started before cutoff.
func (r *ScanRepository) FailStaleScans(ctx context.Context, cutoff time.Time, reason string, completedAt time.Time) (int, error) {
	query := `
		UPDATE scans
		SET status = 'failed', completed_at = $1, lease_expires_at = NULL, error_message = $2
		WHERE status IN ('pending', 'running') AND started_at < $3
	`

	n, err := execRowsAffected(r.db.ExecContext(ctx, query, completedAt, reason, cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to fail stale scans: %w", err)
	}

	return n, nil
}

// IsScanRunning reports whether any scan is pending or running.
func (r *ScanRepository) IsScanRunning(ctx context.Context) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM scans WHERE status IN ('pending', 'running'))`

	var running bool
	if err := r.db.GetContext(ctx, &running, query); err != nil {
		return false, fmt.Errorf("failed to check for running scan: %w", err)
	}

	return running, nil
}

// GetRunningScan returns the running scan, or nil when there is none.
func (r *ScanRepository) GetRunningScan(ctx context.Context) (*domain.Scan, error) {
	query := `
		SELECT ` + scanSelectColumns + `
		FROM scans
		WHERE status = 'running'
		ORDER BY started_at DESC
		LIMIT 1
	`

	return r.getOptional(ctx, "running scan", query)
}

// GetActiveScan returns the running scan whose lease has not expired at now,
// or nil.
func (r *ScanRepository) GetActiveScan(ctx context.Context, now time.Time) (*domain.Scan, error) {
	query := `
		SELECT ` + scanSelectColumns + `
		FROM scans
		WHERE status = 'running' AND lease_expires_at > $1
		ORDER BY started_at DESC
		LIMIT 1
	`

	return r.getOptional(ctx, "active scan", query, now)
}

// GetLatestScan returns the most recently started scan, or nil.
func (r *ScanRepository) GetLatestScan(ctx context.Context) (*domain.Scan, error) {
	query := `
		SELECT ` + scanSelectColumns + `
		FROM scans
		ORDER BY started_at DESC, id DESC
		LIMIT 1
	`

	return r.getOptional(ctx, "latest scan", query)
}

func (r *ScanRepository) getOptional(ctx context.Context, what, query string, args ...any) (*domain.Scan, error) {
	var scan domain.Scan
	if err := r.db.GetContext(ctx, &scan, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil //nolint:nilnil // absence is a normal result
		}
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}

	return &scan, nil
}

// GetByID returns one scan.
func (r *ScanRepository) GetByID(ctx context.Context, id int64) (*domain.Scan, error) {
	query := `SELECT ` + scanSelectColumns + ` FROM scans WHERE id = $1`

	var scan domain.Scan
	if err := r.db.GetContext(ctx, &scan, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScanNotFound
		}
		return nil, fmt.Errorf("failed to get scan %d: %w", id, err)
	}

	return &scan, nil
}

// List returns scans newest first.
func (r *ScanRepository) List(ctx context.Context, limit, offset int) ([]*domain.Scan, error) {
	if limit <= 0 {
		limit = defaultScanListLimit
	}

	query := `
		SELECT ` + scanSelectColumns + `
		FROM scans
		ORDER BY started_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	scans := []*domain.Scan{}
	if err := r.db.SelectContext(ctx, &scans, query, limit, max(offset, 0)); err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}

	return scans, nil
}
