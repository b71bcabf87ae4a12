package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"file-finder/internal/filetypes"
	"file-finder/internal/index"
)

func waitForInvalidation(t *testing.T, store *index.Store) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if store.InvalidationRequested() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Timed out waiting for invalidation")
}

func startTestWatcher(t *testing.T, root string, store *index.Store, debounce time.Duration) *Watcher {
	t.Helper()
	w, err := New(root, filetypes.Supported(), store, debounce)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWatcherInvalidatesOnWrite(t *testing.T) {
	root := t.TempDir()
	store := index.NewStore()
	startTestWatcher(t, root, store, 20*time.Millisecond)

	if err := os.WriteFile(filepath.Join(root, "report.pdf"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	waitForInvalidation(t, store)
}

func TestWatcherIgnoresUnsupportedFiles(t *testing.T) {
	root := t.TempDir()
	store := index.NewStore()
	startTestWatcher(t, root, store, 20*time.Millisecond)

	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	time.Sleep(150 * time.Millisecond)
	if store.InvalidationRequested() {
		t.Error("Expected no invalidation for unsupported extension")
	}
}

func TestWatcherIgnoresHiddenFiles(t *testing.T) {
	root := t.TempDir()
	store := index.NewStore()
	startTestWatcher(t, root, store, 20*time.Millisecond)

	if err := os.WriteFile(filepath.Join(root, ".hidden.pdf"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	time.Sleep(150 * time.Millisecond)
	if store.InvalidationRequested() {
		t.Error("Expected no invalidation for hidden file")
	}
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	store := index.NewStore()
	startTestWatcher(t, root, store, 20*time.Millisecond)

	sub := filepath.Join(root, "docs")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	waitForInvalidation(t, store)

	// Clear the flag the way a reconcile publish would, then confirm the
	// new directory itself is being observed.
	store.Publish(nil)
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(sub, "nested.docx"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	waitForInvalidation(t, store)
}

func TestWatcherMissingRoot(t *testing.T) {
	store := index.NewStore()
	w, err := New(filepath.Join(t.TempDir(), "missing"), filetypes.Supported(), store, time.Millisecond)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err == nil {
		w.Stop()
		t.Error("Expected Start to fail for missing root")
	}
}

func TestDebouncerCollapsesBursts(t *testing.T) {
	var fired atomic.Int64
	d := NewDebouncer(30*time.Millisecond, func(string) {
		fired.Add(1)
	})
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Trigger("/data/report.pdf")
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("Expected burst to collapse to 1 firing, got %d", got)
	}
}

func TestDebouncerFiresPerPath(t *testing.T) {
	var fired atomic.Int64
	d := NewDebouncer(10*time.Millisecond, func(string) {
		fired.Add(1)
	})
	defer d.Stop()

	d.Trigger("/data/a.pdf")
	d.Trigger("/data/b.pdf")

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 2 {
		t.Errorf("Expected 2 firings for distinct paths, got %d", got)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	var fired atomic.Int64
	d := NewDebouncer(50*time.Millisecond, func(string) {
		fired.Add(1)
	})

	d.Trigger("/data/a.pdf")
	if d.PendingCount() != 1 {
		t.Errorf("Expected 1 pending timer, got %d", d.PendingCount())
	}
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("Expected stop to cancel pending firing, got %d", got)
	}
	if d.PendingCount() != 0 {
		t.Errorf("Expected 0 pending timers after stop, got %d", d.PendingCount())
	}
}
