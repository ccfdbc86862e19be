package discovery

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

// BuilderShortcodes is the ContentUnit.Builder value for shortcode content.
const BuilderShortcodes = "shortcodes"

var (
	// shortcodeTag matches an opening shortcode: [name attrs...].
	shortcodeTag = regexp.MustCompile(`\[([a-zA-Z][\w-]*)(\s+[^\]]*)?\]`)
	// shortcodeAttr matches key="value", key='value' or key=value.
	shortcodeAttr = regexp.MustCompile(`([\w-]+)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'\]]+))`)
)

// urlAttrTypes maps URL-bearing shortcode attributes to link types. An empty
// type follows the URL's host.
var urlAttrTypes = map[string]string{
	"url":    "",
	"link":   "",
	"href":   "",
	"src":    domain.LinkTypeMedia,
	"image":  domain.LinkTypeImage,
	"img":    domain.LinkTypeImage,
	"mp4":    domain.LinkTypeMedia,
	"mp3":    domain.LinkTypeMedia,
	"poster": domain.LinkTypeImage,
}

// ShortcodeAdapter reads URLs from bracket shortcode attributes and then runs
// the HTML adapter over the remaining markup.
type ShortcodeAdapter struct {
	normalizer *Normalizer
	html       *HTMLAdapter
}

// NewShortcodeAdapter creates a shortcode adapter.
func NewShortcodeAdapter(n *Normalizer, html *HTMLAdapter) *ShortcodeAdapter {
	return &ShortcodeAdapter{normalizer: n, html: html}
}

func (a *ShortcodeAdapter) Name() string { return "shortcodes" }

func (a *ShortcodeAdapter) Applies(unit *domain.ContentUnit) bool {
	if unit.Builder == BuilderShortcodes {
		return true
	}
	for _, m := range shortcodeTag.FindAllStringSubmatch(unit.Body, -1) {
		if len(shortcodeURLs(m[2])) > 0 {
			return true
		}
	}
	return false
}

func (a *ShortcodeAdapter) Extract(unit *domain.ContentUnit) []domain.Candidate {
	c := newCollector(unit, a.normalizer)

	for _, m := range shortcodeTag.FindAllStringSubmatch(unit.Body, -1) {
		label := shortcodeLabel(m[2])
		for _, attr := range shortcodeURLs(m[2]) {
			c.add(attr.value, urlAttrTypes[attr.key], label, SourceFieldBody)
		}
	}

	a.html.collect(c, unit.Body)
	return c.out
}

type shortcodeValue struct {
	key   string
	value string
}

func parseShortcodeAttrs(raw string) []shortcodeValue {
	var out []shortcodeValue
	for _, m := range shortcodeAttr.FindAllStringSubmatch(raw, -1) {
		out = append(out, shortcodeValue{
			key:   strings.ToLower(m[1]),
			value: firstNonEmpty(m[2], m[3], m[4]),
		})
	}
	return out
}

func shortcodeURLs(raw string) []shortcodeValue {
	var out []shortcodeValue
	for _, attr := range parseShortcodeAttrs(raw) {
		if _, ok := urlAttrTypes[attr.key]; ok && attr.value != "" {
			out = append(out, attr)
		}
	}
	return out
}

func shortcodeLabel(raw string) string {
	for _, attr := range parseShortcodeAttrs(raw) {
		switch attr.key {
		case "title", "text", "label", "caption":
			return strings.TrimSpace(attr.value)
		}
	}
	return ""
}
