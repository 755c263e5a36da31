package csrf

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
)

var ErrNoOrigin = errors.New("csrf: page origin must be an absolute URL")

// Propagator holds the page origin and the token captured at load time.
// The token is not re-read per request; call Refresh after a session rotation.
type Propagator struct {
	origin *url.URL

	mu      sync.RWMutex
	token   string
	present bool
}

// New builds a Propagator for pages served from origin.
func New(origin, token string) (*Propagator, error) {
	u, err := parseOrigin(origin)
	if err != nil {
		return nil, err
	}
	return &Propagator{origin: u, token: token, present: true}, nil
}

// FromCookieHeader reads the csrftoken cookie out of a raw Cookie header once.
// A missing cookie is not an error: requests then carry an empty header.
func FromCookieHeader(origin, header string) (*Propagator, error) {
	u, err := parseOrigin(origin)
	if err != nil {
		return nil, err
	}
	tok, ok := ExtractCookie(header, CookieName)
	return &Propagator{origin: u, token: tok, present: ok}, nil
}

func parseOrigin(origin string) (*url.URL, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, ErrNoOrigin
	}
	return u, nil
}

// Origin is the page origin requests are compared against.
func (p *Propagator) Origin() *url.URL {
	c := *p.origin
	return &c
}

// Token returns the captured token and whether the cookie was present.
func (p *Propagator) Token() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token, p.present
}

// Refresh replaces the token.
func (p *Propagator) Refresh(token string) {
	p.mu.Lock()
	p.token, p.present = token, true
	p.mu.Unlock()
}

// RefreshFromJar re-reads the csrftoken cookie the jar holds for the origin.
// It reports whether a cookie was found; the previous token is kept otherwise.
func (p *Propagator) RefreshFromJar(jar http.CookieJar) bool {
	if jar == nil {
		return false
	}
	for _, c := range jar.Cookies(p.origin) {
		if c.Name == CookieName {
			v, err := url.PathUnescape(c.Value)
			if err != nil {
				v = c.Value
			}
			p.Refresh(v)
			return true
		}
	}
	return false
}

// Apply sets the header on req when it targets the page origin.
func (p *Propagator) Apply(req *http.Request) bool {
	if !SameOrigin(p.origin, req.URL) {
		return false
	}
	tok, _ := p.Token()
	req.Header.Set(HeaderName, tok)
	return true
}
