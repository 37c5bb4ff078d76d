package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "storage.load",
		Kind: KindCorruptData,
		Path: "config",
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindCorruptData {
		t.Fatalf("expected kind %s", KindCorruptData)
	}
	if !strings.Contains(err.Error(), "(path=config)") {
		t.Fatalf("expected path in message, got %q", err.Error())
	}
}

func TestIsKindForOpError(t *testing.T) {
	err := &OpError{
		Op:   "storage.store",
		Kind: KindCapacityExceeded,
		Err:  ErrCapacityExceeded,
	}

	if !IsKind(err, KindCapacityExceeded) {
		t.Fatalf("expected IsKind to match")
	}
	if IsKind(err, KindNotFound) {
		t.Fatalf("expected IsKind to reject other kinds")
	}
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected sentinel to be reachable")
	}
}

func TestKindOfDefaultsToExecution(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != KindExecution {
		t.Fatalf("expected execution, got %s", got)
	}
	if got := KindOf(&OpError{Op: "x", Kind: KindNotFound}); got != KindNotFound {
		t.Fatalf("expected not_found, got %s", got)
	}
}

func TestNilOpError(t *testing.T) {
	var e *OpError
	if e.Error() != "<nil>" {
		t.Fatalf("unexpected nil message %q", e.Error())
	}
	if e.Unwrap() != nil {
		t.Fatalf("expected nil unwrap")
	}
}
