// Package domain holds the link checker's core types.
package domain

import "time"

// Link types assigned at discovery time.
const (
	LinkTypeInternal       = "internal"
	LinkTypeExternal       = "external"
	LinkTypeImage          = "image"
	LinkTypeMedia          = "media"
	LinkTypeCustomFieldURL = "custom_field_url"
)

// Link is one discovered reference with its provenance and latest verdict.
type Link struct {
	ID          int64  `db:"id"           json:"id"`
	URL         string `db:"url"          json:"url"`
	LinkType    string `db:"link_type"    json:"link_type"`
	AnchorText  string `db:"anchor_text"  json:"anchor_text"`
	SourceID    string `db:"source_id"    json:"source_id"`
	SourceType  string `db:"source_type"  json:"source_type"`
	SourceField string `db:"source_field" json:"source_field"`

	StatusCode    *int       `db:"status_code"    json:"status_code,omitempty"`
	StatusText    string     `db:"status_text"    json:"status_text"`
	IsBroken      bool       `db:"is_broken"      json:"is_broken"`
	IsWarning     bool       `db:"is_warning"     json:"is_warning"`
	RedirectURL   *string    `db:"redirect_url"   json:"redirect_url,omitempty"`
	RedirectCount int        `db:"redirect_count" json:"redirect_count"`
	ResponseTime  float64    `db:"response_time"  json:"response_time"`
	ErrorMessage  *string    `db:"error_message"  json:"error_message,omitempty"`
	LastCheck     *time.Time `db:"last_check"     json:"last_check,omitempty"`
	IsDismissed   bool       `db:"is_dismissed"   json:"is_dismissed"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Candidate is a link produced by a discovery adapter, before it is persisted.
type Candidate struct {
	URL         string `json:"url"`
	LinkType    string `json:"link_type"`
	AnchorText  string `json:"anchor_text"`
	SourceID    string `json:"source_id"`
	SourceType  string `json:"source_type"`
	SourceField string `json:"source_field"`
}

// LinkFilter narrows link listings.
type LinkFilter struct {
	// Status is one of broken, warning, ok, unchecked; empty means all.
	Status           string
	LinkType         string
	IncludeDismissed bool
	Limit            int
	Offset           int
}

// LinkStats aggregates link verdicts across the corpus.
type LinkStats struct {
	Total     int `db:"total"     json:"total"`
	Broken    int `db:"broken"    json:"broken"`
	Warnings  int `db:"warnings"  json:"warnings"`
	OK        int `db:"ok"        json:"ok"`
	Unchecked int `db:"unchecked" json:"unchecked"`
	Dismissed int `db:"dismissed" json:"dismissed"`
}
