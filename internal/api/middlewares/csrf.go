package middlewares

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/5w1tchy/blog-ui/internal/csrf"
)

type CSRFOptions struct {
	TokenHeader    string        // Default: "X-CSRFToken"
	FormField      string        // Default: "csrfmiddlewaretoken"
	CookieName     string        // Default: "csrftoken"
	CookiePath     string        // Default: "/"
	CookieSecure   bool          // Set to true in production with HTTPS
	CookieSameSite http.SameSite // Default: SameSiteLaxMode
}

func DefaultCSRFOptions() CSRFOptions {
	return CSRFOptions{
		TokenHeader:    csrf.HeaderName,
		FormField:      "csrfmiddlewaretoken",
		CookieName:     csrf.CookieName,
		CookiePath:     "/",
		CookieSecure:   false, // Set to true in production
		CookieSameSite: http.SameSiteLaxMode,
	}
}

// CSRF issues the token cookie when missing and, for unsafe methods, requires
// the request to echo it in the header or form field. The cookie is readable
// by page scripts so they can copy it into AJAX headers.
func CSRF(opts CSRFOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			expected := ""
			if c, err := r.Cookie(opts.CookieName); err == nil {
				expected = c.Value
			}

			if isSafeMethod(r.Method) {
				if expected == "" {
					tok := generateCSRFToken()
					setCSRFCookie(w, opts, tok)
					r = r.WithContext(context.WithValue(r.Context(), ctxKeyCSRFToken, tok))
				}
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(opts.TokenHeader)
			if provided == "" && opts.FormField != "" {
				provided = r.PostFormValue(opts.FormField)
			}

			if !isValidCSRFToken(expected, provided) {
				log.Printf("[CSRF] Rejected %s %s (cookie=%t header=%t) rid=%s\n",
					r.Method, r.URL.Path, expected != "", provided != "", GetRequestID(r))
				http.Error(w, "CSRF token validation failed", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isSafeMethod(m string) bool {
	return m == http.MethodGet || m == http.MethodHead || m == http.MethodOptions || m == http.MethodTrace
}

func setCSRFCookie(w http.ResponseWriter, opts CSRFOptions, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.CookieName,
		Value:    token,
		Path:     opts.CookiePath,
		Secure:   opts.CookieSecure,
		HttpOnly: false,
		SameSite: opts.CookieSameSite,
		MaxAge:   365 * 24 * 60 * 60,
	})
}

func generateCSRFToken() string {
	var b [32]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

func isValidCSRFToken(expected, provided string) bool {
	if expected == "" || provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}

// CSRFTokenFromRequest returns the token CSRF issued for this request, the
// request's token cookie, or a fresh token.
func CSRFTokenFromRequest(r *http.Request, cookieName string) string {
	if tok, _ := r.Context().Value(ctxKeyCSRFToken).(string); tok != "" {
		return tok
	}
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return generateCSRFToken()
}
