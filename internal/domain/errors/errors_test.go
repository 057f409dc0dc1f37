package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	for _, err := range []error{ErrNotFound, ErrBusinessRule, ErrConflict, ErrValidation, ErrInvalidArgument, ErrInvalidOperation} {
		if err == nil {
			t.Fatal("sentinel error should not be nil")
		}
	}
}

func TestNotFoundMatchesKind(t *testing.T) {
	err := fmt.Errorf("load: %w", NotFound("group", "abc"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Entity != "group" || nf.ID != "abc" {
		t.Fatalf("unexpected NotFoundError: %+v", nf)
	}
	if errors.Is(err, ErrConflict) {
		t.Error("not found must not match conflict")
	}
}

func TestValidationErrorAggregates(t *testing.T) {
	v := &ValidationError{}
	if v.Err() != nil {
		t.Fatal("empty validation error should yield nil")
	}
	v.Add("name", "must not be empty")
	inner := Invalid("row", "must be at least 1")
	v.Merge("positions[0]", inner)

	err := v.Err()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(v.Errors) != 2 || v.Errors[1].Field != "positions[0].row" {
		t.Fatalf("unexpected errors: %+v", v.Errors)
	}
	want := "validation failed: name: must not be empty; positions[0].row: must be at least 1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestKindErrors(t *testing.T) {
	cases := []struct {
		err  error
		kind error
	}{
		{BusinessRule("rule %d", 1), ErrBusinessRule},
		{Conflict("dup"), ErrConflict},
		{InvalidArgument("bad"), ErrInvalidArgument},
		{InvalidOperation("nope"), ErrInvalidOperation},
	}
	for _, c := range cases {
		if !errors.Is(c.err, c.kind) {
			t.Errorf("%v should match %v", c.err, c.kind)
		}
	}
	if BusinessRule("rule %d", 7).Error() != "rule 7" {
		t.Error("message should be formatted")
	}
}
