package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/5w1tchy/blog-ui/internal/api/apperr"
	"github.com/5w1tchy/blog-ui/internal/api/httpx"
	mw "github.com/5w1tchy/blog-ui/internal/api/middlewares"
	"github.com/5w1tchy/blog-ui/internal/store/prefs"
	"github.com/5w1tchy/blog-ui/internal/ui/behavior"
)

// PrefsStore is the persistence the preference handlers need.
type PrefsStore interface {
	DarkMode(ctx context.Context, visitor string) (bool, error)
	SetDarkMode(ctx context.Context, visitor string, on bool) error
	Forget(ctx context.Context, visitor string) error
}

type darkModeBody struct {
	DarkMode bool   `json:"dark_mode"`
	Stored   string `json:"stored"` // the value the page keeps under the darkMode key
}

// GetDarkMode returns the visitor's saved theme. With nothing saved the
// client's prefers-color-scheme hint (?prefers=dark) decides.
func GetDarkMode(store PrefsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor := mw.GetVisitorID(r)
		stored := ""
		on, err := store.DarkMode(r.Context(), visitor)
		switch {
		case err == nil:
			stored = strconv.FormatBool(on)
		case errors.Is(err, prefs.ErrNotFound):
		case errors.Is(err, prefs.ErrInvalidVisitor):
			apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "missing visitor")
			return
		default:
			log.Printf("[Prefs] read failed rid=%s: %v\n", mw.GetRequestID(r), err)
			apperr.HandleDBError(w, r, err, "Preferences unavailable")
			return
		}

		prefersDark := r.URL.Query().Get("prefers") == "dark"
		httpx.OK(w, darkModeBody{
			DarkMode: behavior.ResolveDarkMode(stored, prefersDark),
			Stored:   stored,
		})
	}
}

// PutDarkMode saves the flag. Body: {"dark_mode": bool}, or {"toggle": true}
// to flip the current state the way the page's toggle button does.
func PutDarkMode(store PrefsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var body struct {
			DarkMode *bool `json:"dark_mode"`
			Toggle   bool  `json:"toggle"`
			Current  bool  `json:"current"`
		}
		if err := httpx.DecodeJSON(r.Body, &body); err != nil {
			apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "invalid JSON")
			return
		}

		var on bool
		switch {
		case body.Toggle:
			on, _ = behavior.ToggleDarkMode(body.Current)
		case body.DarkMode != nil:
			on = *body.DarkMode
		default:
			apperr.Write(w, r, apperr.Problem{
				Status: http.StatusBadRequest,
				Title:  "Bad Request",
				FieldErrors: []apperr.FieldError{
					{Field: "dark_mode", Code: "required", Message: "dark_mode or toggle is required"},
				},
			})
			return
		}

		err := store.SetDarkMode(r.Context(), mw.GetVisitorID(r), on)
		switch {
		case err == nil:
		case errors.Is(err, prefs.ErrInvalidVisitor):
			apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "missing visitor")
			return
		default:
			log.Printf("[Prefs] write failed rid=%s: %v\n", mw.GetRequestID(r), err)
			apperr.HandleDBError(w, r, err, "Preferences unavailable")
			return
		}

		httpx.OK(w, darkModeBody{DarkMode: on, Stored: strconv.FormatBool(on)})
	}
}

// ForgetPreferences drops everything saved for the visitor. Deleting nothing
// is still a success.
func ForgetPreferences(store PrefsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.Forget(r.Context(), mw.GetVisitorID(r))
		switch {
		case err == nil, errors.Is(err, prefs.ErrNotFound):
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, prefs.ErrInvalidVisitor):
			apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "missing visitor")
		default:
			log.Printf("[Prefs] forget failed rid=%s: %v\n", mw.GetRequestID(r), err)
			apperr.HandleDBError(w, r, err, "Preferences unavailable")
		}
	}
}
