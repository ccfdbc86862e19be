package discovery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/link-checker/internal/discovery"
)

func newNormalizer(t *testing.T) *discovery.Normalizer {
	t.Helper()
	n, err := discovery.NewNormalizer("https://Example.com/blog/")
	require.NoError(t, err)
	return n
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newNormalizer(t)

	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"root relative drops fragment", "/about#team", "https://example.com/about", true},
		{"document relative", "post-2", "https://example.com/blog/post-2", true},
		{"scheme and host lowered", "HTTPS://CDN.Example.org/A.png", "https://cdn.example.org/A.png", true},
		{"protocol relative", "//video.example.net/v", "https://video.example.net/v", true},
		{"surrounding space", "  https://example.com/x  ", "https://example.com/x", true},
		{"mailto", "mailto:someone@example.com", "", false},
		{"tel", "tel:+15550100", "", false},
		{"javascript", "javascript:void(0)", "", false},
		{"data uri", "data:image/png;base64,AAAA", "", false},
		{"bare fragment", "#top", "", false},
		{"empty", "", "", false},
		{"ftp", "ftp://files.example.com/a", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.Normalize(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizer_WithoutBase(t *testing.T) {
	n, err := discovery.NewNormalizer("")
	require.NoError(t, err)

	_, ok := n.Normalize("/about")
	assert.False(t, ok, "relative references need a base")

	got, ok := n.Normalize("https://example.com/about")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/about", got)
	assert.False(t, n.IsInternal(got))
}

func TestNormalizer_IsInternal(t *testing.T) {
	n := newNormalizer(t)

	assert.True(t, n.IsInternal("https://example.com/about"))
	assert.False(t, n.IsInternal("https://cdn.example.org/a.png"))
	assert.Equal(t, "internal", n.PageLinkType("https://example.com/"))
	assert.Equal(t, "external", n.PageLinkType("https://other.org/"))
}
