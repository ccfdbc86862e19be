package discovery

import (
	"strings"

	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

// CustomFieldExtractor reads URLs from configured metadata keys. Each key is
// recorded as the candidate's source field.
type CustomFieldExtractor struct {
	normalizer *Normalizer
	fields     []string
}

// NewCustomFieldExtractor creates an extractor for fields.
func NewCustomFieldExtractor(n *Normalizer, fields []string) *CustomFieldExtractor {
	return &CustomFieldExtractor{normalizer: n, fields: fields}
}

// Extract returns candidates for every configured key present on unit.
// String values and lists of strings are accepted; anything else is ignored.
func (e *CustomFieldExtractor) Extract(unit *domain.ContentUnit) []domain.Candidate {
	if len(e.fields) == 0 || len(unit.Metadata) == 0 {
		return nil
	}

	c := newCollector(unit, e.normalizer)
	for _, field := range e.fields {
		for _, raw := range metadataStrings(unit.Metadata[field]) {
			if !looksLikeURL(raw) {
				continue
			}
			c.add(raw, domain.LinkTypeCustomFieldURL, "", field)
		}
	}

	return c.out
}

func metadataStrings(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// looksLikeURL accepts absolute http(s) URLs and root-relative paths, so
// free-text fields that happen to be configured do not produce candidates.
func looksLikeURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "//") || strings.HasPrefix(s, "/")
}
