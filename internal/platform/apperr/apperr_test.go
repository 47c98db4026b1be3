package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIs_MatchesByKind(t *testing.T) {
	err := fmt.Errorf("create request: %w", Conflict("applicant already has an active adoption request"))

	if !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if IsValidation(err) || IsNotFound(err) {
		t.Fatalf("unexpected kind match for %v", err)
	}
	if KindOf(err) != KindConflict {
		t.Fatalf("expected kind conflict, got %q", KindOf(err))
	}
}

func TestIs_SlotConflictIsAlsoConflict(t *testing.T) {
	err := SlotConflict("slot already taken")

	if !IsSlotConflict(err) {
		t.Fatalf("expected slot conflict")
	}
	if !IsConflict(err) {
		t.Fatalf("slot conflict must also match conflict")
	}
	if IsSlotConflict(Conflict("other")) {
		t.Fatalf("plain conflict must not match slot conflict")
	}
}

func TestDependency_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Dependency("postgres", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if !IsDependency(err) {
		t.Fatalf("expected dependency kind")
	}
	if got := err.Error(); got != "postgres: connection refused" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if k := KindOf(errors.New("boom")); k != "" {
		t.Fatalf("expected empty kind, got %q", k)
	}
}
