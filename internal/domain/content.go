package domain

import "time"

// ContentUnit is one item of the configured corpus that discovery parses.
type ContentUnit struct {
	ID          int64  `db:"id"`
	SourceType  string `db:"source_type"`
	Title       string `db:"title"`
	Body        string `db:"body"`
	Permalink   string `db:"permalink"`
	Builder     string `db:"builder"`
	RawMetadata []byte `db:"metadata"`
	// Metadata is decoded from RawMetadata by the repository.
	Metadata  map[string]any `db:"-"`
	UpdatedAt time.Time      `db:"updated_at"`
}
