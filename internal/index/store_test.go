package index

import (
	"sync"
	"testing"
	"time"

	"file-finder/internal/filetypes"
)

func record(name string, mod time.Time) *FileRecord {
	return &FileRecord{
		Name:         name,
		RelativePath: name,
		AbsolutePath: "/records/" + name,
		SizeBytes:    100,
		ModifiedAt:   mod,
		Folder:       "/",
		Extension:    filetypes.FromName(name),
	}
}

func TestNewStoreStartsEmpty(t *testing.T) {
	store := NewStore()

	snap := store.Current()
	if snap == nil {
		t.Fatal("Expected a non-nil initial snapshot")
	}
	if snap.Version != 0 {
		t.Errorf("Expected version 0, got %d", snap.Version)
	}
	if len(snap.Records) != 0 {
		t.Errorf("Expected no records, got %d", len(snap.Records))
	}
	if store.HasData() {
		t.Error("Expected HasData=false before first publish")
	}
}

func TestPublishBumpsVersion(t *testing.T) {
	store := NewStore()
	now := time.Now()

	var versions []uint64
	for i := 0; i < 5; i++ {
		snap := store.Publish([]*FileRecord{record("report.pdf", now)})
		versions = append(versions, snap.Version)
	}

	for i, v := range versions {
		if v != uint64(i+1) {
			t.Errorf("Expected version %d at publish %d, got %d", i+1, i, v)
		}
	}

	if store.Current().Version != 5 {
		t.Errorf("Expected current version 5, got %d", store.Current().Version)
	}
}

func TestPublishSortsNewestFirst(t *testing.T) {
	store := NewStore()
	now := time.Now()

	old := record("old.pdf", now.Add(-2*time.Hour))
	mid := record("mid.docx", now.Add(-1*time.Hour))
	fresh := record("fresh.xlsx", now)

	snap := store.Publish([]*FileRecord{old, fresh, mid})

	if snap.Records[0] != fresh || snap.Records[1] != mid || snap.Records[2] != old {
		t.Errorf("Records not sorted newest first: %v, %v, %v",
			snap.Records[0].Name, snap.Records[1].Name, snap.Records[2].Name)
	}
}

func TestSortRecordsTieBreak(t *testing.T) {
	now := time.Now()
	a := record("a.pdf", now)
	b := record("b.pdf", now)

	recs := []*FileRecord{b, a}
	SortRecords(recs)

	if recs[0] != a || recs[1] != b {
		t.Error("Expected ties broken by absolute path ascending")
	}
}

func TestInvalidationFlag(t *testing.T) {
	store := NewStore()

	if store.InvalidationRequested() {
		t.Error("Expected no invalidation initially")
	}

	store.RequestInvalidation()
	if !store.InvalidationRequested() {
		t.Error("Expected invalidation after request")
	}

	// The flag is sticky until the next publish
	store.RequestInvalidation()
	if !store.InvalidationRequested() {
		t.Error("Expected invalidation to remain set")
	}

	store.Publish(nil)
	if store.InvalidationRequested() {
		t.Error("Expected publish to clear the invalidation flag")
	}
}

func TestHasDataAfterEmptyPublish(t *testing.T) {
	store := NewStore()

	// A confirmed-empty directory still counts as data
	store.Publish([]*FileRecord{})

	if !store.HasData() {
		t.Error("Expected HasData=true after publishing an empty snapshot")
	}
	if store.LastPublish().IsZero() {
		t.Error("Expected LastPublish to be set")
	}
}

func TestConcurrentReadersDuringPublish(t *testing.T) {
	store := NewStore()
	now := time.Now()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Readers must always observe a fully-built snapshot with a
	// non-decreasing version.
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var last uint64
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := store.Current()
				if snap == nil {
					t.Error("Current returned nil")
					return
				}
				if snap.Version < last {
					t.Errorf("Version went backwards: %d -> %d", last, snap.Version)
					return
				}
				last = snap.Version
			}
		}()
	}

	for i := 0; i < 100; i++ {
		store.Publish([]*FileRecord{record("report.pdf", now)})
	}
	close(stop)
	wg.Wait()
}
