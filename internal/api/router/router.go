package router

import (
	"net/http"

	"github.com/5w1tchy/blog-ui/internal/api/handlers"
	mw "github.com/5w1tchy/blog-ui/internal/api/middlewares"
)

type Deps struct {
	Prefs handlers.PrefsStore
	CSRF  mw.CSRFOptions
	// StrengthLimit guards the strength endpoint; nil disables it.
	StrengthLimit func(http.Handler) http.Handler
}

func Router(d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handlers.Health)

	mux.Handle("GET /api/csrf", mw.CSRFTokenHandler(d.CSRF))

	var strength http.Handler = http.HandlerFunc(handlers.PasswordStrength)
	if d.StrengthLimit != nil {
		strength = d.StrengthLimit(strength)
	}
	mux.Handle("POST /api/password-strength", strength)

	mux.Handle("GET /api/preferences/dark-mode", handlers.GetDarkMode(d.Prefs))
	mux.Handle("PUT /api/preferences/dark-mode", handlers.PutDarkMode(d.Prefs))
	mux.Handle("DELETE /api/preferences", handlers.ForgetPreferences(d.Prefs))

	mux.HandleFunc("GET /ui/bindings", handlers.Bindings)

	// Everything above sees the CSRF check; safe methods just get the cookie.
	return mw.Chain(mux, mw.Visitor(d.CSRF.CookieSecure), mw.CSRF(d.CSRF))
}
