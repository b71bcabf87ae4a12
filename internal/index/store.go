package index

import (
	"sync"
	"sync/atomic"
	"time"

	"file-finder/internal/metrics"
)

// Store holds the currently published snapshot and its staleness state.
//
// Concurrency discipline: exactly one writer (the reconciler, serialized by
// the scheduler) calls Publish; unboundedly many readers call Current. The
// snapshot itself is swapped through an atomic pointer so readers never block
// on the writer. The mutex guards only publish bookkeeping and the change
// signal, never snapshot traversal.
type Store struct {
	current atomic.Pointer[Snapshot]

	mu          sync.Mutex
	changed     chan struct{}
	lastPublish time.Time
	hasData     bool

	invalidated atomic.Bool
}

// NewStore creates a store holding an empty version-0 snapshot.
func NewStore() *Store {
	s := &Store{changed: make(chan struct{})}
	s.current.Store(&Snapshot{Records: []*FileRecord{}})
	return s
}

// Current returns the latest published snapshot. It never blocks and never
// returns nil; before the first publish it returns the empty version-0
// snapshot.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Publish sorts records, wraps them in a snapshot with the next version, and
// atomically replaces the current snapshot. The invalidation flag is cleared
// and all consumers waiting for a version change are woken.
func (s *Store) Publish(records []*FileRecord) *Snapshot {
	SortRecords(records)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := &Snapshot{
		Records: records,
		Version: s.current.Load().Version + 1,
		BuiltAt: time.Now(),
	}
	s.current.Store(next)

	s.invalidated.Store(false)
	s.lastPublish = next.BuiltAt
	s.hasData = true

	// Wake everyone waiting on the previous signal channel.
	close(s.changed)
	s.changed = make(chan struct{})

	return next
}

// RequestInvalidation marks the current snapshot as stale. It never blocks
// and never rebuilds; the scheduler reads the flag to decide whether to
// reconcile ahead of the freshness window.
func (s *Store) RequestInvalidation() {
	s.invalidated.Store(true)
}

// InvalidationRequested reports whether an invalidation has been requested
// since the last publish.
func (s *Store) InvalidationRequested() bool {
	return s.invalidated.Load()
}

// LastPublish returns the time of the last successful publish, zero before
// the first one.
func (s *Store) LastPublish() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPublish
}

// HasData reports whether at least one reconciliation has published a
// snapshot. Used to gate the "still building" state; a confirmed-empty
// directory counts as data.
func (s *Store) HasData() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasData
}

// changeSignal returns a channel that is closed on the next publish.
func (s *Store) changeSignal() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}

// SnapshotInfo implements metrics.SnapshotProvider.
func (s *Store) SnapshotInfo() metrics.SnapshotInfo {
	snap := s.Current()
	return metrics.SnapshotInfo{
		Records: len(snap.Records),
		Version: snap.Version,
		BuiltAt: snap.BuiltAt,
	}
}
