package database

import "errors"

// Repository errors. Callers should check with errors.Is().
var (
	ErrLinkNotFound = errors.New("link not found")
	ErrScanNotFound = errors.New("scan not found")
	// ErrScanNotActive means the scan exists but is no longer pending or running.
	ErrScanNotActive = errors.New("scan is not active")
	// ErrActiveScanExists is returned when the single-active-scan index rejects an insert.
	ErrActiveScanExists = errors.New("another scan is already active")
	ErrInvalidFilter    = errors.New("invalid link filter")
)
