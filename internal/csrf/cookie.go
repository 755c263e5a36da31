// Package csrf carries the anti-forgery token issued by the blog backend
// into outgoing same-origin requests.
package csrf

import (
	"net/url"
	"strings"
)

const (
	CookieName = "csrftoken"
	HeaderName = "X-CSRFToken"
)

// ExtractCookie returns the percent-decoded value of the first pair in a raw
// Cookie header whose key equals name after trimming. A value that fails to
// decode is returned as-is.
func ExtractCookie(header, name string) (string, bool) {
	if header == "" {
		return "", false
	}
	prefix := name + "="
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, prefix) {
			continue
		}
		raw := part[len(prefix):]
		if v, err := url.PathUnescape(raw); err == nil {
			return v, true
		}
		return raw, true
	}
	return "", false
}
