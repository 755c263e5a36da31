package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	mw "github.com/5w1tchy/blog-ui/internal/api/middlewares"
)

func TestVisitor_AssignsAndReuses(t *testing.T) {
	var seen string
	wrapped := mw.Visitor(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = mw.GetVisitorID(r)
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != mw.VisitorCookie || cookies[0].Value != seen || seen == "" {
		t.Fatalf("Expected visitor cookie matching context id, got %+v (ctx %q)", cookies, seen)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: mw.VisitorCookie, Value: "known-visitor"})
	rec = httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	if seen != "known-visitor" || len(rec.Result().Cookies()) != 0 {
		t.Errorf("Expected existing visitor to be reused, got %q", seen)
	}
}

func TestVisitor_RejectsMalformedCookie(t *testing.T) {
	var seen string
	wrapped := mw.Visitor(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = mw.GetVisitorID(r)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: mw.VisitorCookie, Value: "bad!id"})
	wrapped.ServeHTTP(httptest.NewRecorder(), req)
	if seen == "bad!id" || seen == "" {
		t.Errorf("Expected a fresh id, got %q", seen)
	}
}

func TestVisitorMinted(t *testing.T) {
	var minted []bool
	h := mw.Visitor(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		minted = append(minted, mw.VisitorMinted(r))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: mw.VisitorCookie, Value: "abc123"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if len(minted) != 2 || !minted[0] || minted[1] {
		t.Fatalf("minted = %v, want [true false]", minted)
	}
}
