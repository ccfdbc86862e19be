// Package discovery extracts candidate links from content units.
//
// Each unit body is handled by exactly one Adapter: the first in priority
// order whose Applies reports true. Custom metadata fields are extracted
// separately and merged into the same per-unit result.
package discovery

import (
	"strconv"

	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

// SourceFieldBody marks candidates found in a unit's body.
const SourceFieldBody = "body"

// Adapter extracts candidates from a content unit's body.
type Adapter interface {
	Name() string
	Applies(unit *domain.ContentUnit) bool
	Extract(unit *domain.ContentUnit) []domain.Candidate
}

// DefaultAdapters returns the body adapters in priority order.
func DefaultAdapters(n *Normalizer) []Adapter {
	html := NewHTMLAdapter(n)
	return []Adapter{
		NewBlockAdapter(n, html),
		NewShortcodeAdapter(n, html),
		html,
	}
}

// SelectAdapter returns the first adapter that applies to unit, or nil.
func SelectAdapter(adapters []Adapter, unit *domain.ContentUnit) Adapter {
	for _, a := range adapters {
		if a.Applies(unit) {
			return a
		}
	}
	return nil
}

// collector accumulates one unit's candidates, dropping duplicates of the
// same normalized URL within the same source field.
type collector struct {
	unit       *domain.ContentUnit
	normalizer *Normalizer
	seen       map[string]struct{}
	out        []domain.Candidate
}

func newCollector(unit *domain.ContentUnit, n *Normalizer) *collector {
	return &collector{unit: unit, normalizer: n, seen: make(map[string]struct{})}
}

// add normalizes raw and records it. An empty linkType means the type is
// derived from the host (internal or external).
func (c *collector) add(raw, linkType, anchor, field string) {
	normalized, ok := c.normalizer.Normalize(raw)
	if !ok {
		return
	}

	key := field + "\x00" + normalized
	if _, dup := c.seen[key]; dup {
		return
	}
	c.seen[key] = struct{}{}

	if linkType == "" {
		linkType = c.normalizer.PageLinkType(normalized)
	}

	c.out = append(c.out, domain.Candidate{
		URL:         normalized,
		LinkType:    linkType,
		AnchorText:  anchor,
		SourceID:    strconv.FormatInt(c.unit.ID, 10),
		SourceType:  c.unit.SourceType,
		SourceField: field,
	})
}

func (c *collector) merge(candidates []domain.Candidate) {
	for _, cand := range candidates {
		key := cand.SourceField + "\x00" + cand.URL
		if _, dup := c.seen[key]; dup {
			continue
		}
		c.seen[key] = struct{}{}
		c.out = append(c.out, cand)
	}
}
