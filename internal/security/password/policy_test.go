package password

import (
	"context"
	"errors"
	"testing"
)

func TestValidate_TooShort(t *testing.T) {
	_, _, err := Validate(context.Background(), "  Ab1!  ")
	if !errors.Is(err, ErrTooShort) {
		t.Fatalf("want ErrTooShort, got %v", err)
	}
}

func TestValidate_StrongHasNoWarning(t *testing.T) {
	trimmed, warn, err := Validate(context.Background(), " Abcdefg1! ")
	if err != nil {
		t.Fatal(err)
	}
	if trimmed != "Abcdefg1!" {
		t.Errorf("trimmed = %q", trimmed)
	}
	if warn != nil {
		t.Errorf("unexpected warning %+v", warn)
	}
}

func TestValidate_WeakWarns(t *testing.T) {
	_, warn, err := Validate(context.Background(), "abcdefgh")
	if err != nil {
		t.Fatal(err)
	}
	if warn == nil || warn.Score != 2 || len(warn.Missing) != 3 {
		t.Fatalf("warn = %+v", warn)
	}
}

func TestValidate_HintPenalty(t *testing.T) {
	_, warn, err := Validate(context.Background(), "Alice2024!", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if warn == nil || warn.Score != 5 || warn.Message == "" {
		t.Fatalf("warn = %+v", warn)
	}
}

func TestMinLen(t *testing.T) {
	t.Setenv("PASSWORD_MIN_LEN", "12")
	if MinLen() != 12 {
		t.Errorf("MinLen = %d", MinLen())
	}
	t.Setenv("PASSWORD_MIN_LEN", "4")
	if MinLen() != DefaultMinLen {
		t.Errorf("MinLen must not go below default, got %d", MinLen())
	}
	if _, _, err := Validate(context.Background(), "Abcdefg1!"); err != nil {
		t.Errorf("unexpected err %v", err)
	}
}
