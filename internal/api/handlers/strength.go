package handlers

import (
	"errors"
	"net/http"

	"github.com/5w1tchy/blog-ui/internal/api/apperr"
	"github.com/5w1tchy/blog-ui/internal/api/httpx"
	"github.com/5w1tchy/blog-ui/internal/security/password"
	"github.com/5w1tchy/blog-ui/internal/ui/strength"
)

type strengthResponse struct {
	Score       int                  `json:"score"`
	Width       int                  `json:"width"`
	Class       string               `json:"class"`
	ClassName   string               `json:"class_name"`
	Criteria    []strength.Criterion `json:"criteria"`
	Message     string               `json:"message,omitempty"`
	Suggestions []string             `json:"suggestions,omitempty"`
	Acceptable  bool                 `json:"acceptable"`
}

// PasswordStrength scores a password for the meter. The password is never
// logged or stored.
func PasswordStrength(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var body struct {
		Password string   `json:"password"`
		Hints    []string `json:"hints,omitempty"`
	}
	if err := httpx.DecodeJSON(r.Body, &body); err != nil {
		apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "invalid JSON")
		return
	}

	trimmed, warn, err := password.Validate(r.Context(), body.Password, body.Hints...)
	if err != nil && !errors.Is(err, password.ErrTooShort) {
		apperr.WriteStatus(w, r, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	score := strength.Score(trimmed)
	d := strength.Present(score)
	resp := strengthResponse{
		Score:     score,
		Width:     d.Width,
		Class:     d.Class,
		ClassName: d.ClassName(),
		Criteria:  strength.Criteria(trimmed),
	}
	if err != nil {
		resp.Message, resp.Suggestions = strength.Feedback(score)
	} else {
		resp.Acceptable = true
		if warn != nil {
			resp.Message, resp.Suggestions = warn.Message, warn.Suggestions
		}
	}

	httpx.OK(w, resp)
}
