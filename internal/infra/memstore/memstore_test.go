package memstore

import (
	"context"
	"testing"
)

func TestStoreGetSetClear(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, "config"); ok || err != nil {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}

	in := []byte("blob")
	if err := s.Set(ctx, "config", in); err != nil {
		t.Fatalf("Set: %v", err)
	}
	in[0] = 'X'

	got, ok, err := s.Get(ctx, "config")
	if err != nil || !ok || string(got) != "blob" {
		t.Fatalf("unexpected get: %q ok=%v err=%v", got, ok, err)
	}

	_ = s.Set(ctx, "bangs", []byte("legacy"))
	if err := s.Clear(ctx, "bangs"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected one key left, got %d", s.Len())
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear all: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store")
	}
}
