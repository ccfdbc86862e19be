package discovery

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

// BuilderBlocks is the ContentUnit.Builder value for block-markup content.
const BuilderBlocks = "blocks"

// blockComment matches an opening or self-closing block delimiter such as
// <!-- wp:image {"id":3,"url":"https://..."} /-->.
var blockComment = regexp.MustCompile(`<!--\s+wp:([a-z0-9][a-z0-9/_-]*)\s+(\{.*?\})\s*/?-->`)

// blockAttrs holds the URL-bearing attributes a block may carry.
type blockAttrs struct {
	URL       string `mapstructure:"url"`
	Href      string `mapstructure:"href"`
	Src       string `mapstructure:"src"`
	MediaLink string `mapstructure:"mediaLink"`
	Poster    string `mapstructure:"poster"`
	Label     string `mapstructure:"label"`
	Caption   string `mapstructure:"caption"`
}

// BlockAdapter reads URLs from block-comment JSON attributes and then runs
// the HTML adapter over the rendered markup between the delimiters.
type BlockAdapter struct {
	normalizer *Normalizer
	html       *HTMLAdapter
}

// NewBlockAdapter creates a block adapter.
func NewBlockAdapter(n *Normalizer, html *HTMLAdapter) *BlockAdapter {
	return &BlockAdapter{normalizer: n, html: html}
}

func (a *BlockAdapter) Name() string { return "blocks" }

func (a *BlockAdapter) Applies(unit *domain.ContentUnit) bool {
	return unit.Builder == BuilderBlocks || strings.Contains(unit.Body, "<!-- wp:")
}

func (a *BlockAdapter) Extract(unit *domain.ContentUnit) []domain.Candidate {
	c := newCollector(unit, a.normalizer)

	for _, m := range blockComment.FindAllStringSubmatch(unit.Body, -1) {
		attrs, ok := decodeBlockAttrs(m[2])
		if !ok {
			continue
		}

		linkType := blockLinkType(m[1])
		label := strings.TrimSpace(firstNonEmpty(attrs.Label, attrs.Caption))
		for _, raw := range []string{attrs.URL, attrs.Href, attrs.Src, attrs.MediaLink} {
			c.add(raw, linkType, label, SourceFieldBody)
		}
		c.add(attrs.Poster, domain.LinkTypeImage, label, SourceFieldBody)
	}

	a.html.collect(c, unit.Body)
	return c.out
}

func decodeBlockAttrs(raw string) (blockAttrs, bool) {
	var generic map[string]any
	if err := json.Unmarshal([]byte(raw), &generic); err != nil {
		return blockAttrs{}, false
	}

	var attrs blockAttrs
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &attrs,
	})
	if err != nil {
		return blockAttrs{}, false
	}
	if err = decoder.Decode(generic); err != nil {
		return blockAttrs{}, false
	}

	return attrs, true
}

// blockLinkType maps a block name to a link type. An empty result means the
// type follows the URL's host.
func blockLinkType(name string) string {
	switch {
	case strings.Contains(name, "image"), strings.Contains(name, "gallery"), strings.Contains(name, "cover"):
		return domain.LinkTypeImage
	case strings.Contains(name, "video"), strings.Contains(name, "audio"),
		strings.Contains(name, "embed"), strings.Contains(name, "file"):
		return domain.LinkTypeMedia
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
