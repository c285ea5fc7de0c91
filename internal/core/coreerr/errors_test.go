package coreerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew_WrapsKind(t *testing.T) {
	t.Parallel()

	sentinel := New(ErrNotFound, "employee: not found")

	if sentinel.Error() != "employee: not found" {
		t.Fatalf("unexpected message: %s", sentinel.Error())
	}
	if !errors.Is(sentinel, ErrNotFound) {
		t.Fatalf("expected sentinel to match ErrNotFound")
	}
	if errors.Is(sentinel, ErrValidation) {
		t.Fatalf("sentinel should not match ErrValidation")
	}

	wrapped := fmt.Errorf("delete: %w", sentinel)
	if !errors.Is(wrapped, sentinel) || !errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("expected wrapped error to match both sentinel and kind")
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "validation", err: New(ErrValidation, "bad"), want: ErrValidation},
		{name: "duplicate", err: fmt.Errorf("x: %w", New(ErrDuplicateKey, "dup")), want: ErrDuplicateKey},
		{name: "already marked", err: New(ErrAlreadyMarked, "marked"), want: ErrAlreadyMarked},
		{name: "inconsistent", err: New(ErrInconsistent, "broken"), want: ErrInconsistent},
		{name: "unknown", err: errors.New("boom"), want: nil},
		{name: "nil", err: nil, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := KindOf(tc.err); got != tc.want {
				t.Fatalf("KindOf() = %v, want %v", got, tc.want)
			}
		})
	}
}
