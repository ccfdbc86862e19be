package domain

import "time"

// ScanStatus is a scan's lifecycle state.
type ScanStatus string

const (
	ScanStatusPending   ScanStatus = "pending"
	ScanStatusRunning   ScanStatus = "running"
	ScanStatusCompleted ScanStatus = "completed"
	ScanStatusCancelled ScanStatus = "cancelled"
	ScanStatusFailed    ScanStatus = "failed"
)

// IsTerminal reports whether no further transitions are allowed.
func (s ScanStatus) IsTerminal() bool {
	return s == ScanStatusCompleted || s == ScanStatusCancelled || s == ScanStatusFailed
}

// IsActive reports pending or running.
func (s ScanStatus) IsActive() bool {
	return s == ScanStatusPending || s == ScanStatusRunning
}

// Scan types.
const (
	ScanTypeFull      = "full"
	ScanTypeScheduled = "scheduled"
)

// Scan is one discovery and verification run.
type Scan struct {
	ID     int64      `db:"id"        json:"id"`
	Type   string     `db:"scan_type" json:"type"`
	Status ScanStatus `db:"status"    json:"status"`

	TotalLinks   int `db:"total_links"   json:"total_links"`
	CheckedLinks int `db:"checked_links" json:"checked_links"`
	BrokenLinks  int `db:"broken_links"  json:"broken_links"`
	WarningLinks int `db:"warning_links" json:"warning_links"`

	StartedAt      time.Time  `db:"started_at"       json:"started_at"`
	CompletedAt    *time.Time `db:"completed_at"     json:"completed_at,omitempty"`
	LeaseExpiresAt *time.Time `db:"lease_expires_at" json:"lease_expires_at,omitempty"`
	ErrorMessage   *string    `db:"error_message"    json:"error_message,omitempty"`
}

// ScanCounters are per-batch increments to a scan's running totals.
type ScanCounters struct {
	Checked  int
	Broken   int
	Warnings int
}

// IsZero reports whether no link was counted.
func (c ScanCounters) IsZero() bool {
	return c.Checked == 0 && c.Broken == 0 && c.Warnings == 0
}
