// Package prefs persists per-visitor UI preferences (currently the dark-mode
// flag) so a theme picked on one device follows the visitor cookie.
package prefs

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("prefs: not found")
	ErrInvalidVisitor = errors.New("prefs: invalid visitor id")
)

//go:embed schema.sql
var schema string

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

// EnsureSchema creates the preferences table and its index if missing. The
// statements are idempotent, so it runs on every start.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply prefs schema: %w", err)
	}
	return nil
}

// DarkMode returns the stored flag for visitor, ErrNotFound if none was saved.
func (s *Store) DarkMode(ctx context.Context, visitor string) (bool, error) {
	visitor, err := cleanVisitor(visitor)
	if err != nil {
		return false, err
	}
	var on bool
	err = s.db.QueryRowContext(ctx,
		`SELECT dark_mode FROM public.ui_preferences WHERE visitor_id = $1`, visitor,
	).Scan(&on)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("select dark_mode: %w", err)
	}
	return on, nil
}

// SetDarkMode upserts the flag. Last write wins.
func (s *Store) SetDarkMode(ctx context.Context, visitor string, on bool) error {
	visitor, err := cleanVisitor(visitor)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO public.ui_preferences (visitor_id, dark_mode, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (visitor_id) DO UPDATE SET dark_mode = EXCLUDED.dark_mode, updated_at = now()`,
		visitor, on)
	if err != nil {
		return fmt.Errorf("upsert dark_mode: %w", err)
	}
	return nil
}

// Forget removes every preference for visitor.
func (s *Store) Forget(ctx context.Context, visitor string) error {
	visitor, err := cleanVisitor(visitor)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM public.ui_preferences WHERE visitor_id = $1`, visitor)
	if err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// PruneOlderThan deletes rows last updated before cutoff.
func (s *Store) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM public.ui_preferences WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune preferences: %w", err)
	}
	return res.RowsAffected()
}

func cleanVisitor(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" || len(v) > 128 {
		return "", ErrInvalidVisitor
	}
	return v, nil
}
