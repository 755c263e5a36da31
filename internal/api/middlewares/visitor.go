package middlewares

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

const VisitorCookie = "visitor_id"

// Visitor tags every request with a long-lived anonymous id used to key UI
// preferences. It is not an identity and carries no authority.
func Visitor(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, minted := "", false
			if c, err := r.Cookie(VisitorCookie); err == nil && ridRe.MatchString(c.Value) {
				id = c.Value
			}
			if id == "" {
				minted = true
				var b [16]byte
				_, _ = rand.Read(b[:])
				id = hex.EncodeToString(b[:])
				http.SetCookie(w, &http.Cookie{
					Name:     VisitorCookie,
					Value:    id,
					Path:     "/",
					Secure:   secure,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   365 * 24 * 60 * 60,
				})
			}
			ctx := context.WithValue(r.Context(), ctxKeyVisitorID, id)
			if minted {
				ctx = context.WithValue(ctx, ctxKeyVisitorMinted, true)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetVisitorID returns the id set by Visitor, or "".
func GetVisitorID(r *http.Request) string {
	v, _ := r.Context().Value(ctxKeyVisitorID).(string)
	return v
}

// VisitorMinted reports whether the id was created for this request because
// no cookie came in. Such ids say nothing about who is calling.
func VisitorMinted(r *http.Request) bool {
	v, _ := r.Context().Value(ctxKeyVisitorMinted).(bool)
	return v
}

// WithVisitorID is used by tests and internal callers that bypass the cookie.
func WithVisitorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyVisitorID, id)
}
