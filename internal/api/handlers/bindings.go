package handlers

import (
	"net/http"

	"github.com/5w1tchy/blog-ui/internal/api/httpx"
	"github.com/5w1tchy/blog-ui/internal/ui/bindings"
)

// Bindings lists the page behaviors so templates and front-end tests can
// check the host markup provides every selector.
func Bindings(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, map[string]any{
		"bindings":  bindings.Table(),
		"selectors": bindings.Selectors(),
	})
}
