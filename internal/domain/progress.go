package domain

import (
	"math"
	"time"
)

// ProgressStatusIdle is reported when no scan is active or recoverable.
const ProgressStatusIdle = "idle"

// Progress is the polling read model derived from a Scan row.
type Progress struct {
	ScanID   int64  `json:"scan_id,omitempty"`
	Status   string `json:"status"`
	Total    int    `json:"total"`
	Checked  int    `json:"checked"`
	Broken   int    `json:"broken"`
	Warnings int    `json:"warnings"`
	Percent  int    `json:"percent"`

	// StartedAt lets a cached snapshot be checked for staleness without a
	// database read.
	StartedAt *time.Time `json:"started_at,omitempty"`
}

// IdleProgress is the snapshot for "nothing running".
func IdleProgress() Progress {
	return Progress{Status: ProgressStatusIdle}
}

// ProgressFromScan derives a snapshot from s.
func ProgressFromScan(s *Scan) Progress {
	p := Progress{
		ScanID:   s.ID,
		Status:   string(s.Status),
		Total:    s.TotalLinks,
		Checked:  s.CheckedLinks,
		Broken:   s.BrokenLinks,
		Warnings: s.WarningLinks,
		Percent:  Percent(s.CheckedLinks, s.TotalLinks),
	}
	if !s.StartedAt.IsZero() {
		started := s.StartedAt
		p.StartedAt = &started
	}
	return p
}

// Percent is round(checked/total*100), or 0 when total is 0.
func Percent(checked, total int) int {
	if total <= 0 {
		return 0
	}
	const hundred = 100
	return int(math.Round(float64(checked) / float64(total) * hundred))
}
