package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNotifyDebouncesBursts(t *testing.T) {
	calls := make(chan []string, 4)
	w := New("/data", []string{"sync.db"}, func(p []string) { calls <- p }, WithDebounce(20*time.Millisecond))

	w.Notify("/data/sync.db")
	w.Notify("/data/sync.db")
	w.Notify("/data/other.txt")

	select {
	case got := <-calls:
		if len(got) != 1 || got[0] != "/data/sync.db" {
			t.Fatalf("unexpected paths: %v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a callback")
	}

	select {
	case got := <-calls:
		t.Fatalf("expected a single callback, got extra %v", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNotifyIgnoresUnwatchedNames(t *testing.T) {
	called := make(chan struct{}, 1)
	w := New("/data", []string{"settings.yaml"}, func([]string) { called <- struct{}{} }, WithDebounce(10*time.Millisecond))

	w.Notify("/data/logs/bangs.log")

	select {
	case <-called:
		t.Fatalf("unexpected callback")
	case <-time.After(80 * time.Millisecond):
	}
}

func TestRunReportsFileWrites(t *testing.T) {
	dir := t.TempDir()
	calls := make(chan []string, 4)
	w := New(dir, []string{"settings.yaml"}, func(p []string) { calls <- p }, WithDebounce(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	target := filepath.Join(dir, "settings.yaml")
	deadline := time.After(3 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

loop:
	for {
		select {
		case <-tick.C:
			// Keep writing until the watcher is registered and reports.
			if err := os.WriteFile(target, []byte("bangs: {}\n"), 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}
		case got := <-calls:
			if len(got) == 0 || filepath.Base(got[0]) != "settings.yaml" {
				t.Fatalf("unexpected paths: %v", got)
			}
			break loop
		case <-deadline:
			t.Fatalf("timed out waiting for change notification")
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestNoCallbackAfterStop(t *testing.T) {
	called := make(chan struct{}, 2)
	w := New("/data", []string{"sync.db"}, func([]string) { called <- struct{}{} }, WithDebounce(time.Hour))

	w.Notify("/data/sync.db")
	w.stop()
	// A timer that fired just before stop still runs flush.
	w.flush()
	w.Notify("/data/sync.db")

	select {
	case <-called:
		t.Fatalf("unexpected callback after stop")
	case <-time.After(50 * time.Millisecond):
	}
}
