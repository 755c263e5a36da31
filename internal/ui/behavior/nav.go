package behavior

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	ActiveClass = "active"
	AriaCurrent = "page"
)

// CurrentPage is the last path segment, or index.html for a trailing slash.
func CurrentPage(pathname string) string {
	if p := lastSegment(pathname); p != "" {
		return p
	}
	return "index.html"
}

// NavActive reports whether a nav link should be marked current. The match
// is a substring test on the last segments, so a bare "/" link matches
// every page.
func NavActive(pathname, href string) bool {
	if href == "" || href == "#" {
		return false
	}
	page := norm.NFC.String(CurrentPage(pathname))
	return strings.Contains(page, norm.NFC.String(lastSegment(href)))
}

func lastSegment(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}
