package discovery

import (
	"net/url"
	"strings"

	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

var skippedPrefixes = []string{"mailto:", "tel:", "javascript:", "data:", "#"}

// Normalizer turns raw references into absolute, checkable URLs.
type Normalizer struct {
	base *url.URL
}

// NewNormalizer creates a normalizer resolving against baseURL. An empty
// baseURL leaves relative references unresolvable.
func NewNormalizer(baseURL string) (*Normalizer, error) {
	if baseURL == "" {
		return &Normalizer{}, nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	base.Scheme = strings.ToLower(base.Scheme)
	base.Host = strings.ToLower(base.Host)

	return &Normalizer{base: base}, nil
}

// Normalize returns the absolute form of raw without its fragment, or false
// when raw is not an http(s) reference.
func (n *Normalizer) Normalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	lower := strings.ToLower(raw)
	for _, prefix := range skippedPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return "", false
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if n.base != nil {
		u = n.base.ResolveReference(u)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}

	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	return u.String(), true
}

// IsInternal reports whether normalized points at the site's own host.
func (n *Normalizer) IsInternal(normalized string) bool {
	if n.base == nil {
		return false
	}

	u, err := url.Parse(normalized)
	if err != nil {
		return false
	}

	return u.Host == n.base.Host
}

// PageLinkType classifies a navigational reference.
func (n *Normalizer) PageLinkType(normalized string) string {
	if n.IsInternal(normalized) {
		return domain.LinkTypeInternal
	}
	return domain.LinkTypeExternal
}
