package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRunCallsOnChangeForWatchedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "AGENTS.md")
	other := filepath.Join(dir, "unrelated.txt")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, []string{target}, 20*time.Millisecond, func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(other, []byte("x"), 0644); err != nil {
		t.Fatalf("write unrelated file: %v", err)
	}
	select {
	case <-changed:
		t.Fatalf("unexpected callback for unwatched file")
	case <-time.After(150 * time.Millisecond):
	}

	if err := os.WriteFile(target, []byte("rules"), 0644); err != nil {
		t.Fatalf("write target: %v", err)
	}
	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatalf("expected callback after writing watched file")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}

func TestRunFailsWithoutWatchableDirs(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone", "deeper", "file.md")
	err := Run(context.Background(), []string{missing}, 0, func() {})
	if err == nil {
		t.Fatalf("expected error when no directory can be watched")
	}
}
