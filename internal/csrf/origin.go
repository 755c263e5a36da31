package csrf

import (
	"net/url"
	"strings"
)

// SameOrigin reports whether u shares scheme, host and port with origin.
// Relative URLs (no host) are same-origin.
func SameOrigin(origin, u *url.URL) bool {
	if u == nil || origin == nil {
		return false
	}
	if u.Host == "" && u.Scheme == "" {
		return true
	}
	if !strings.EqualFold(origin.Scheme, u.Scheme) {
		return false
	}
	return strings.EqualFold(origin.Hostname(), u.Hostname()) &&
		effectivePort(origin) == effectivePort(u)
}

func effectivePort(u *url.URL) string {
	if p := u.Port(); p != "" {
		return p
	}
	switch strings.ToLower(u.Scheme) {
	case "https", "wss":
		return "443"
	case "http", "ws":
		return "80"
	}
	return ""
}
