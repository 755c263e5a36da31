// Package cli implements blogctl, a small client for the blog UI service.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/5w1tchy/blog-ui/internal/csrf"
	"github.com/5w1tchy/blog-ui/internal/ui/strength"
)

var ErrNoToken = errors.New("server did not issue a csrftoken cookie")

type App struct {
	Base string
	HTTP *http.Client
	Out  io.Writer
}

func NewApp(base string, out io.Writer) (*App, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &App{
		Base: strings.TrimRight(base, "/"),
		HTTP: &http.Client{Jar: jar, Timeout: 10 * time.Second},
		Out:  out,
	}, nil
}

// Meter renders a score the way the page's strength bar shows it.
func Meter(score int) string {
	d := strength.Present(score)
	filled := d.Width / 10
	bar := strings.Repeat("#", filled) + strings.Repeat(".", 10-filled)
	label := d.Class
	if label == "" {
		label = "empty"
	}
	return fmt.Sprintf("[%s] %3d%% %s (%d/%d)", bar, d.Width, label, score, strength.MaxScore)
}

// Local scores pwd without contacting the server.
func (a *App) Local(pwd string) {
	score := strength.Score(pwd)
	fmt.Fprintln(a.Out, Meter(score))
	if missing := strength.Missing(pwd); len(missing) > 0 {
		fmt.Fprintf(a.Out, "missing: %s\n", strings.Join(missing, ", "))
	}
}

type remoteResult struct {
	Score       int      `json:"score"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
	Acceptable  bool     `json:"acceptable"`
}

// Remote loads /api/csrf once, captures the token from the jar and posts the
// password through a CSRF-propagating client.
func (a *App) Remote(ctx context.Context, pwd string) error {
	p, err := a.propagator(ctx)
	if err != nil {
		return err
	}
	client := csrf.NewClient(a.HTTP, p)

	body, _ := json.Marshal(map[string]string{"password": pwd})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Base+"/api/password-strength", strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post strength: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("post strength: status %d", resp.StatusCode)
	}

	var env struct {
		Data remoteResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode strength: %w", err)
	}
	r := env.Data
	fmt.Fprintln(a.Out, Meter(r.Score))
	if r.Message != "" {
		fmt.Fprintln(a.Out, r.Message)
	}
	for _, s := range r.Suggestions {
		fmt.Fprintf(a.Out, "  - %s\n", s)
	}
	if !r.Acceptable {
		fmt.Fprintln(a.Out, "rejected by server policy")
	}
	return nil
}

func (a *App) propagator(ctx context.Context) (*csrf.Propagator, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.Base+"/api/csrf", nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch csrf: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	p, err := csrf.New(a.Base, "")
	if err != nil {
		return nil, err
	}
	if !p.RefreshFromJar(a.HTTP.Jar) {
		return nil, ErrNoToken
	}
	return p, nil
}
