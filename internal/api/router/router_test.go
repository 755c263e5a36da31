package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	mw "github.com/5w1tchy/blog-ui/internal/api/middlewares"
	"github.com/5w1tchy/blog-ui/internal/api/router"
	"github.com/5w1tchy/blog-ui/internal/csrf"
	"github.com/5w1tchy/blog-ui/internal/store/prefs"
)

type memPrefs struct {
	mu   sync.Mutex
	dark map[string]bool
}

func (m *memPrefs) DarkMode(_ context.Context, v string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	on, ok := m.dark[v]
	if !ok {
		return false, prefs.ErrNotFound
	}
	return on, nil
}

func (m *memPrefs) SetDarkMode(_ context.Context, v string, on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dark[v] = on
	return nil
}

func (m *memPrefs) Forget(_ context.Context, v string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.dark, v)
	return nil
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(router.Router(router.Deps{
		Prefs: &memPrefs{dark: map[string]bool{}},
		CSRF:  mw.DefaultCSRFOptions(),
	}))
	t.Cleanup(srv.Close)
	return srv
}

// bootstrap loads a page the way a browser would, so the jar holds the
// csrftoken and visitor cookies.
func bootstrap(t *testing.T, srv *httptest.Server) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	c := &http.Client{Jar: jar}
	resp, err := c.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	return c
}

func postStrength(t *testing.T, c *http.Client, url string) int {
	t.Helper()
	resp, err := c.Post(url+"/api/password-strength", "application/json", strings.NewReader(`{"password":"Abcdefg1!"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestPropagatedTokenPassesCSRF(t *testing.T) {
	srv := newServer(t)
	base := bootstrap(t, srv)

	p, err := csrf.New(srv.URL, "")
	if err != nil {
		t.Fatal(err)
	}
	if !p.RefreshFromJar(base.Jar) {
		t.Fatal("expected csrftoken cookie after first page load")
	}
	client := csrf.NewClient(base, p)

	if code := postStrength(t, client, srv.URL); code != http.StatusOK {
		t.Fatalf("Expected 200 with propagated token, got %d", code)
	}
}

func TestMissingTokenIsRejected(t *testing.T) {
	srv := newServer(t)
	base := bootstrap(t, srv)

	if code := postStrength(t, base, srv.URL); code != http.StatusForbidden {
		t.Fatalf("Expected 403 without X-CSRFToken, got %d", code)
	}
}

func TestDarkModeFollowsVisitor(t *testing.T) {
	srv := newServer(t)
	base := bootstrap(t, srv)
	p, _ := csrf.New(srv.URL, "")
	p.RefreshFromJar(base.Jar)
	client := csrf.NewClient(base, p)

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/preferences/dark-mode", strings.NewReader(`{"dark_mode":true}`))
	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status %d", resp.StatusCode)
	}

	resp, err = client.Get(srv.URL + "/api/preferences/dark-mode")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var env struct {
		Data struct {
			DarkMode bool   `json:"dark_mode"`
			Stored   string `json:"stored"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	if !env.Data.DarkMode || env.Data.Stored != "true" {
		t.Errorf("Expected saved dark mode, got %+v", env.Data)
	}
}

func TestForgetPreferencesRoute(t *testing.T) {
	srv := newServer(t)
	base := bootstrap(t, srv)
	p, _ := csrf.New(srv.URL, "")
	p.RefreshFromJar(base.Jar)
	client := csrf.NewClient(base, p)

	put, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/preferences/dark-mode", strings.NewReader(`{"dark_mode":true}`))
	resp, err := client.Do(put)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	del, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/preferences", nil)
	resp, err = client.Do(del)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status %d", resp.StatusCode)
	}

	resp, err = client.Get(srv.URL + "/api/preferences/dark-mode")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var env struct {
		Data struct {
			Stored string `json:"stored"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	if env.Data.Stored != "" {
		t.Errorf("preference survived DELETE: %+v", env.Data)
	}
}
