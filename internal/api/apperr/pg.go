package apperr

import (
	"errors"
	"net/http"
	"strings"

	pgconnv1 "github.com/jackc/pgconn"
	"github.com/jackc/pgx/v5/pgconn"
)

var constraintField = map[string]string{
	"ui_preferences_pkey":           "visitor_id",
	"ui_preferences_visitor_id_len": "visitor_id",
}

// pgError is the part of a driver error FromPG reads. The pgx v5 stdlib
// driver returns *pgx/v5/pgconn.PgError; older callers wrap the v1 type.
type pgError struct {
	Code, ConstraintName, ColumnName, Detail string
}

func asPG(err error) (pgError, bool) {
	var v5 *pgconn.PgError
	if errors.As(err, &v5) {
		return pgError{v5.Code, v5.ConstraintName, v5.ColumnName, v5.Detail}, true
	}
	var v1 *pgconnv1.PgError
	if errors.As(err, &v1) {
		return pgError{v1.Code, v1.ConstraintName, v1.ColumnName, v1.Detail}, true
	}
	return pgError{}, false
}

func fieldOf(pg pgError) string {
	if f, ok := constraintField[pg.ConstraintName]; ok {
		return f
	}
	if pg.ColumnName != "" {
		return pg.ColumnName
	}
	for _, k := range []string{"visitor_id", "dark_mode", "updated_at"} {
		if strings.Contains(pg.Detail, k) {
			return k
		}
	}
	return ""
}

// FromPG maps a Postgres error to a Problem. Returns (Problem, true) if mapped.
func FromPG(err error) (Problem, bool) {
	pg, ok := asPG(err)
	if !ok {
		return Problem{}, false
	}

	field := fieldOf(pg)
	fieldErr := func(status int, code, msg string) Problem {
		if field == "" {
			field = "field"
		}
		return Problem{
			Status:      status,
			Title:       http.StatusText(status),
			FieldErrors: []FieldError{{Field: field, Code: code, Message: msg}},
		}
	}

	switch pg.Code {
	case "23502": // not_null_violation
		return fieldErr(http.StatusBadRequest, "not_null", "required field is missing"), true
	case "23514": // check_violation
		return fieldErr(http.StatusUnprocessableEntity, "check", "constraint failed"), true
	case "22001": // string_data_right_truncation
		return fieldErr(http.StatusBadRequest, "too_long", "value is too long"), true
	case "22P02": // invalid_text_representation
		return fieldErr(http.StatusBadRequest, "invalid", "invalid format"), true
	case "40001", "40P01": // serialization_failure, deadlock_detected
		return Problem{
			Status:    http.StatusConflict,
			Title:     "Conflict",
			Detail:    "transaction conflict, please retry",
			Retryable: true,
		}, true
	case "57014": // query_canceled (statement timeout)
		return Problem{
			Status:    http.StatusServiceUnavailable,
			Title:     "Service Unavailable",
			Retryable: true,
		}, true
	}
	return Problem{Status: http.StatusInternalServerError, Title: "Database error"}, true
}

// HandleDBError maps err to a Problem and writes it. Returns true if handled.
func HandleDBError(w http.ResponseWriter, r *http.Request, err error, fallbackTitle string) bool {
	if err == nil {
		return false
	}
	if p, ok := FromPG(err); ok {
		Write(w, r, p)
		return true
	}
	Write(w, r, Problem{Status: http.StatusInternalServerError, Title: fallbackTitle})
	return true
}
