// Package password applies the server-side password policy: a hard minimum
// length plus warn-only strength feedback shared with the front-end meter.
package password

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/5w1tchy/blog-ui/internal/ui/strength"
)

const DefaultMinLen = 8

var ErrTooShort = errors.New("weak_password.length")

type Warning struct {
	Score       int      `json:"score"`       // 0..5
	Message     string   `json:"message"`     // brief
	Suggestions []string `json:"suggestions"` // short hints
	Missing     []string `json:"missing,omitempty"`
}

// MinLen reads PASSWORD_MIN_LEN, never going below DefaultMinLen.
func MinLen() int {
	if v := os.Getenv("PASSWORD_MIN_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > DefaultMinLen {
			return n
		}
	}
	return DefaultMinLen
}

// Validate trims the password; blocks only on MinLen; returns warn-only score/info.
// Signature places error last to satisfy linters.
func Validate(ctx context.Context, pwd string, userInputs ...string) (trimmed string, warn *Warning, err error) {
	trimmed = strings.TrimSpace(pwd)

	if len([]rune(trimmed)) < MinLen() {
		return trimmed, nil, ErrTooShort
	}

	w := Assess(trimmed, userInputs...)
	if w.Score < strength.MaxScore || w.Message != "" {
		warn = &w
	}
	return trimmed, warn, nil
}

// Assess scores pwd and builds feedback. A password that contains one of the
// user's own inputs (username, email) gets an extra warning but keeps its score.
func Assess(pwd string, userInputs ...string) Warning {
	score := strength.Score(pwd)
	msg, sugg := strength.Feedback(score)
	w := Warning{Score: score, Message: msg, Suggestions: sugg, Missing: strength.Missing(pwd)}

	lower := strings.ToLower(pwd)
	for _, h := range userInputs {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		if strings.Contains(lower, h) && len(pwd) < 16 {
			w.Message = "Contains your username or email."
			w.Suggestions = append(w.Suggestions, "Avoid reusing personal details in your password.")
			break
		}
	}
	return w
}
