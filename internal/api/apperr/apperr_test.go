package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	pgconnv1 "github.com/jackc/pgconn"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestFromPG(t *testing.T) {
	tests := []struct {
		name      string
		pg        *pgconn.PgError
		status    int
		field     string
		retryable bool
	}{
		{"check by constraint", &pgconn.PgError{Code: "23514", ConstraintName: "ui_preferences_visitor_id_len"}, 422, "visitor_id", false},
		{"not null by column", &pgconn.PgError{Code: "23502", ColumnName: "dark_mode"}, 400, "dark_mode", false},
		{"too long from detail", &pgconn.PgError{Code: "22001", Detail: "value for visitor_id too long"}, 400, "visitor_id", false},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, 409, "", true},
		{"timeout", &pgconn.PgError{Code: "57014"}, 503, "", true},
		{"other", &pgconn.PgError{Code: "XX000"}, 500, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := FromPG(fmt.Errorf("upsert: %w", tt.pg))
			if !ok {
				t.Fatal("wrapped PgError not mapped")
			}
			if p.Status != tt.status || p.Retryable != tt.retryable {
				t.Fatalf("got status=%d retryable=%v", p.Status, p.Retryable)
			}
			if tt.field != "" && (len(p.FieldErrors) != 1 || p.FieldErrors[0].Field != tt.field) {
				t.Fatalf("field errors = %+v, want %s", p.FieldErrors, tt.field)
			}
		})
	}

	// v1 errors still map for callers on the older driver
	if p, ok := FromPG(&pgconnv1.PgError{Code: "57014"}); !ok || p.Status != http.StatusServiceUnavailable {
		t.Fatalf("v1 timeout mapped to %+v, %v", p, ok)
	}

	if _, ok := FromPG(errors.New("plain")); ok {
		t.Fatal("non-PG error should not map")
	}
}

func TestHandleDBError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/api/preferences/dark-mode", nil)
	rec := httptest.NewRecorder()
	rec.Header().Set("X-Request-ID", "rid-1")

	if !HandleDBError(rec, req, errors.New("conn reset"), "Preferences unavailable") {
		t.Fatal("expected handled")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content-type = %q", ct)
	}
	var p Problem
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.Title != "Preferences unavailable" || p.RequestID != "rid-1" || p.Instance != "/api/preferences/dark-mode" {
		t.Fatalf("problem = %+v", p)
	}

	if HandleDBError(httptest.NewRecorder(), req, nil, "x") {
		t.Fatal("nil error should not be handled")
	}
}
