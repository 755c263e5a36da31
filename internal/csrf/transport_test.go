package csrf_test

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/5w1tchy/blog-ui/internal/csrf"
)

type captureRT struct {
	mu   sync.Mutex
	seen []*http.Request
}

func (c *captureRT) RoundTrip(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	c.seen = append(c.seen, req)
	c.mu.Unlock()
	rec := httptest.NewRecorder()
	rec.WriteHeader(http.StatusNoContent)
	return rec.Result(), nil
}

func (c *captureRT) last() *http.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seen[len(c.seen)-1]
}

func TestTransport_SameOriginGetsHeader(t *testing.T) {
	p, err := csrf.FromCookieHeader("https://blog.example", "a=1; csrftoken=XYZ123; b=2")
	if err != nil {
		t.Fatal(err)
	}
	rt := &captureRT{}
	client := csrf.NewClient(&http.Client{Transport: rt}, p)

	resp, err := client.Post("https://blog.example/api/comments", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if got := rt.last().Header.Get(csrf.HeaderName); got != "XYZ123" {
		t.Errorf("X-CSRFToken = %q, want XYZ123", got)
	}
}

func TestTransport_CrossOriginUntouched(t *testing.T) {
	p, _ := csrf.New("https://blog.example", "XYZ123")
	rt := &captureRT{}
	client := csrf.NewClient(&http.Client{Transport: rt}, p)

	for _, target := range []string{
		"https://cdn.example/lib.js",
		"http://blog.example/api",       // scheme differs
		"https://blog.example:8443/api", // port differs
	} {
		resp, err := client.Get(target)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if _, ok := rt.last().Header[csrf.HeaderName]; ok {
			t.Errorf("%s: cross-origin request carried %s", target, csrf.HeaderName)
		}
	}
}

func TestTransport_DefaultPortIsSameOrigin(t *testing.T) {
	p, _ := csrf.New("https://blog.example", "tok")
	rt := &captureRT{}
	client := csrf.NewClient(&http.Client{Transport: rt}, p)

	resp, err := client.Get("https://BLOG.example:443/x")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := rt.last().Header.Get(csrf.HeaderName); got != "tok" {
		t.Errorf("header = %q, want tok", got)
	}
}

func TestTransport_DoesNotMutateCallerRequest(t *testing.T) {
	p, _ := csrf.New("https://blog.example", "tok")
	tr := &csrf.Transport{Propagator: p, Base: &captureRT{}}

	req := httptest.NewRequest(http.MethodPost, "https://blog.example/api", nil)
	req.RequestURI = ""
	resp, err := tr.RoundTrip(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if req.Header.Get(csrf.HeaderName) != "" {
		t.Error("caller request was mutated")
	}
}

func TestTransport_MissingCookieSendsEmptyHeader(t *testing.T) {
	p, _ := csrf.FromCookieHeader("https://blog.example", "")
	if _, ok := p.Token(); ok {
		t.Fatal("expected token to be absent")
	}
	rt := &captureRT{}
	client := csrf.NewClient(&http.Client{Transport: rt}, p)
	resp, err := client.Get("https://blog.example/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	v, ok := rt.last().Header[csrf.HeaderName]
	if !ok || len(v) != 1 || v[0] != "" {
		t.Errorf("expected empty %s header, got %v (present=%v)", csrf.HeaderName, v, ok)
	}
}

func TestPropagator_TokenCapturedOnce(t *testing.T) {
	p, _ := csrf.FromCookieHeader("https://blog.example", "csrftoken=first")

	if tok, _ := p.Token(); tok != "first" {
		t.Errorf("token = %q, want first", tok)
	}
	p.Refresh("second")
	if tok, _ := p.Token(); tok != "second" {
		t.Errorf("after Refresh token = %q, want second", tok)
	}
}

func TestPropagator_RefreshFromJar(t *testing.T) {
	p, _ := csrf.New("https://blog.example", "old")
	jar, _ := cookiejar.New(nil)
	u, _ := url.Parse("https://blog.example/")

	if p.RefreshFromJar(jar) {
		t.Fatal("empty jar should not refresh")
	}
	jar.SetCookies(u, []*http.Cookie{{Name: csrf.CookieName, Value: "new%21", Path: "/"}})
	if !p.RefreshFromJar(jar) {
		t.Fatal("expected refresh from jar")
	}
	if tok, _ := p.Token(); tok != "new!" {
		t.Errorf("token = %q, want new!", tok)
	}
}

func TestNew_RejectsRelativeOrigin(t *testing.T) {
	if _, err := csrf.New("/relative", "x"); err == nil {
		t.Error("expected error for relative origin")
	}
}

func TestSameOrigin_Relative(t *testing.T) {
	origin, _ := url.Parse("https://blog.example")
	rel, _ := url.Parse("/api/x")
	if !csrf.SameOrigin(origin, rel) {
		t.Error("relative URL should be same-origin")
	}
}
