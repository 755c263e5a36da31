package csrf

import "net/http"

// Transport attaches the CSRF header to same-origin requests just before
// they are sent. Cross-origin requests pass through untouched.
type Transport struct {
	Propagator *Propagator
	Base       http.RoundTripper
}

// RoundTrip implements http.RoundTripper. The caller's request is not mutated.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if t.Propagator == nil || !SameOrigin(t.Propagator.origin, req.URL) {
		return base.RoundTrip(req)
	}
	r2 := req.Clone(req.Context())
	t.Propagator.Apply(r2)
	return base.RoundTrip(r2)
}

// NewClient wraps baseClient so every request goes through the propagator.
func NewClient(baseClient *http.Client, p *Propagator) *http.Client {
	if baseClient == nil {
		baseClient = http.DefaultClient
	}
	transport := baseClient.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Transport:     &Transport{Propagator: p, Base: transport},
		Timeout:       baseClient.Timeout,
		CheckRedirect: baseClient.CheckRedirect,
		Jar:           baseClient.Jar,
	}
}
