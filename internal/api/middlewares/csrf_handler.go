package middlewares

import (
	"net/http"

	"github.com/5w1tchy/blog-ui/internal/api/httpx"
)

// CSRFTokenHandler hands the current token to scripts that cannot read the
// cookie directly (and sets the cookie for those that can).
func CSRFTokenHandler(opts CSRFOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		token := CSRFTokenFromRequest(r, opts.CookieName)
		_, issued := r.Context().Value(ctxKeyCSRFToken).(string)
		if c, err := r.Cookie(opts.CookieName); !issued && (err != nil || c.Value != token) {
			setCSRFCookie(w, opts, token)
		}

		httpx.OK(w, map[string]string{
			"csrf_token": token,
			"header":     opts.TokenHeader,
		})
	}
}
