package behavior

import "strings"

// ScrollOptions are passed to scrollIntoView.
type ScrollOptions struct {
	Behavior string `json:"behavior"`
	Block    string `json:"block"`
}

var SmoothScroll = ScrollOptions{Behavior: "smooth", Block: "start"}

// ScrollTarget resolves an in-page anchor href to the id it points at.
// The click's default is always prevented; ok is false when there is
// nothing to scroll to.
func ScrollTarget(href string) (id string, ok bool) {
	if !strings.HasPrefix(href, "#") {
		return "", false
	}
	id = href[1:]
	if id == "" {
		return "", false
	}
	return id, true
}
