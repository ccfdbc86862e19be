package checker

import (
	"net/http"
	"net/url"
	"strings"
)

// IsRedirect reports whether code is one of the redirect statuses the
// checker follows by hand.
func IsRedirect(code int) bool {
	switch code {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// ResolveRedirect turns a Location header into an absolute URL.
//
// Every hop resolves against original, never the previous hop:
//   - "//host/path" becomes "https://host/path"
//   - "/path" uses original's scheme and host
//   - absolute URLs are returned unchanged
//   - anything else is joined to the directory of original's path
func ResolveRedirect(original, location string) string {
	if strings.HasPrefix(location, "//") {
		return "https:" + location
	}

	base, err := url.Parse(original)
	if err != nil {
		return location
	}
	origin := base.Scheme + "://" + base.Host

	if strings.HasPrefix(location, "/") {
		return origin + location
	}

	if loc, parseErr := url.Parse(location); parseErr == nil && loc.IsAbs() {
		return location
	}

	dir := "/"
	if idx := strings.LastIndex(base.Path, "/"); idx >= 0 {
		dir = base.Path[:idx+1]
	}
	return origin + dir + location
}
