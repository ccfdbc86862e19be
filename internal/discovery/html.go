package discovery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

// mediaSelectors lists elements whose src points at embedded media.
const mediaSelectors = "iframe[src], video[src], audio[src], source[src], embed[src]"

// HTMLAdapter extracts anchors, images and embedded media from plain HTML.
// It applies to every unit and is the fallback adapter.
type HTMLAdapter struct {
	normalizer *Normalizer
}

// NewHTMLAdapter creates an HTML adapter.
func NewHTMLAdapter(n *Normalizer) *HTMLAdapter {
	return &HTMLAdapter{normalizer: n}
}

func (a *HTMLAdapter) Name() string { return "html" }

func (a *HTMLAdapter) Applies(*domain.ContentUnit) bool { return true }

func (a *HTMLAdapter) Extract(unit *domain.ContentUnit) []domain.Candidate {
	c := newCollector(unit, a.normalizer)
	a.collect(c, unit.Body)
	return c.out
}

func (a *HTMLAdapter) collect(c *collector, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		c.add(href, "", anchorText(s), SourceFieldBody)
	})

	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		alt, _ := s.Attr("alt")
		c.add(src, domain.LinkTypeImage, strings.TrimSpace(alt), SourceFieldBody)
	})

	doc.Find(mediaSelectors).Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		title, _ := s.Attr("title")
		c.add(src, domain.LinkTypeMedia, strings.TrimSpace(title), SourceFieldBody)
	})
}

const maxAnchorTextLen = 255

func anchorText(s *goquery.Selection) string {
	text := strings.Join(strings.Fields(s.Text()), " ")
	if text == "" {
		if alt, ok := s.Find("img[alt]").First().Attr("alt"); ok {
			text = strings.TrimSpace(alt)
		}
	}
	if runes := []rune(text); len(runes) > maxAnchorTextLen {
		text = string(runes[:maxAnchorTextLen])
	}
	return text
}
