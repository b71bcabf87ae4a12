package indexer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"file-finder/internal/index"
)

func waitForVersion(t *testing.T, store *index.Store, version uint64) *index.Snapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if snap := store.Current(); snap.Version >= version {
			return snap
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for snapshot version %d (at %d)", version, store.Current().Version)
	return nil
}

func TestIndexerInitialReconcile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "report.pdf"), "content")

	store := index.NewStore()
	idx := New(store, newTestReconciler(t, root), time.Minute, 10*time.Millisecond)
	idx.Start()
	defer idx.Stop()

	snap := waitForVersion(t, store, 1)
	if len(snap.Records) != 1 {
		t.Errorf("Expected 1 record, got %d", len(snap.Records))
	}
	if !idx.IsReady() {
		t.Error("Expected indexer to be ready after first publish")
	}
}

func TestIndexerInvalidationTriggersRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.pdf"), "a")

	store := index.NewStore()
	idx := New(store, newTestReconciler(t, root), time.Hour, 10*time.Millisecond)
	idx.Start()
	defer idx.Stop()

	waitForVersion(t, store, 1)

	writeFile(t, filepath.Join(root, "b.pdf"), "b")
	store.RequestInvalidation()

	snap := waitForVersion(t, store, 2)
	if len(snap.Records) != 2 {
		t.Errorf("Expected 2 records after invalidation, got %d", len(snap.Records))
	}
	if store.InvalidationRequested() {
		t.Error("Expected invalidation flag to be cleared by publish")
	}
}

func TestIndexerFreshnessWindow(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.pdf"), "a")

	store := index.NewStore()
	idx := New(store, newTestReconciler(t, root), 20*time.Millisecond, 10*time.Millisecond)
	idx.Start()
	defer idx.Stop()

	// With a tiny freshness window the scheduler keeps republishing.
	waitForVersion(t, store, 3)
}

func TestIndexerAtMostOneReconcile(t *testing.T) {
	root := t.TempDir()
	store := index.NewStore()
	idx := New(store, newTestReconciler(t, root), time.Hour, time.Hour)

	if !idx.tryStartReconcile() {
		t.Fatal("Expected first start to succeed")
	}
	if idx.tryStartReconcile() {
		t.Error("Expected overlapping start to be refused")
	}
	if !idx.IsReconciling() {
		t.Error("Expected IsReconciling to report true mid-cycle")
	}
	idx.finishReconcile()
	if !idx.tryStartReconcile() {
		t.Error("Expected start to succeed after previous cycle finished")
	}
}

func TestIndexerKeepsSnapshotOnError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.pdf"), "a")

	store := index.NewStore()
	idx := New(store, newTestReconciler(t, root), time.Hour, 10*time.Millisecond)
	idx.Start()
	defer idx.Stop()

	snap := waitForVersion(t, store, 1)

	// Make the root unreadable so the next cycle fails outright.
	if err := os.RemoveAll(root); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	store.RequestInvalidation()
	time.Sleep(100 * time.Millisecond)

	current := store.Current()
	if current.Version != snap.Version {
		t.Errorf("Expected failed reconcile to keep v%d, got v%d", snap.Version, current.Version)
	}
	if len(current.Records) != 1 {
		t.Errorf("Expected previous records to survive, got %d", len(current.Records))
	}
}

func TestIndexerHealthStatus(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.pdf"), "a")

	store := index.NewStore()
	idx := New(store, newTestReconciler(t, root), time.Hour, 10*time.Millisecond)

	status := idx.GetHealthStatus()
	if status.Ready {
		t.Error("Expected not ready before first reconcile")
	}

	idx.Start()
	defer idx.Stop()
	waitForVersion(t, store, 1)

	status = idx.GetHealthStatus()
	if !status.Ready {
		t.Error("Expected ready after first publish")
	}
	if status.SnapshotVersion != 1 {
		t.Errorf("Expected snapshot version 1, got %d", status.SnapshotVersion)
	}
	if status.RecordCount != 1 {
		t.Errorf("Expected 1 record, got %d", status.RecordCount)
	}
	if status.LastReconciled.IsZero() {
		t.Error("Expected LastReconciled to be set")
	}

	stats := idx.LastStats()
	if stats.Scanned != 1 {
		t.Errorf("Expected 1 scanned, got %d", stats.Scanned)
	}
}
