package scan

import "errors"

var (
	// ErrScanAlreadyRunning is returned by Start while another scan is
	// pending or running.
	ErrScanAlreadyRunning = errors.New("a scan is already running")
	// ErrScanCreateFailed wraps a failure to create the scan record.
	ErrScanCreateFailed = errors.New("failed to create scan record")
)
