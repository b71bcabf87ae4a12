package indexer

import (
	"sync"
	"time"

	"file-finder/internal/index"
	"file-finder/internal/logging"
	"file-finder/internal/metrics"
)

// Trigger reasons for a reconciliation run.
const (
	triggerInitial      = "initial"
	triggerFreshness    = "freshness"
	triggerInvalidation = "invalidation"
	triggerManual       = "manual"
)

// Indexer drives reconciliation: immediately at startup, then on a short
// tick whenever the published snapshot is older than the freshness window
// or an invalidation has been requested. At most one reconciliation is ever
// in flight; overlapping triggers are no-ops and are honored by the sticky
// invalidation flag on the next tick.
type Indexer struct {
	store      *index.Store
	reconciler *Reconciler
	freshness  time.Duration
	tick       time.Duration
	stopChan   chan struct{}

	mu            sync.Mutex
	isReconciling bool
	lastReconcile time.Time
	lastStats     ReconcileStats
	initialError  error
	initialDone   bool
	startTime     time.Time
}

// New creates an indexer. The freshness window bounds the age of the
// published snapshot; the tick is the scheduler's polling interval.
func New(store *index.Store, reconciler *Reconciler, freshness, tick time.Duration) *Indexer {
	return &Indexer{
		store:      store,
		reconciler: reconciler,
		freshness:  freshness,
		tick:       tick,
		stopChan:   make(chan struct{}),
		startTime:  time.Now(),
	}
}

// Start launches the initial reconciliation and the scheduler loop in the
// background and returns immediately.
func (idx *Indexer) Start() {
	go func() {
		logging.Info("Starting initial reconciliation in background...")
		idx.runReconcile(triggerInitial)
	}()

	go idx.schedulerLoop()
}

// Stop stops the scheduler loop. An in-flight reconciliation finishes;
// its result is still published.
func (idx *Indexer) Stop() {
	close(idx.stopChan)
}

// schedulerLoop is the two-state machine: Idle between ticks, Reconciling
// while a cycle runs. A tick that arrives mid-cycle is a no-op.
func (idx *Indexer) schedulerLoop() {
	ticker := time.NewTicker(idx.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if reason := idx.dueReason(); reason != "" {
				idx.runReconcile(reason)
			}
		case <-idx.stopChan:
			logging.Info("Scheduler stopped")
			return
		}
	}
}

// dueReason returns why a reconciliation should run now, or "" if the
// snapshot is still fresh. Invalidation wins over the freshness window so
// the trigger metric reflects watcher activity.
func (idx *Indexer) dueReason() string {
	if idx.store.InvalidationRequested() {
		return triggerInvalidation
	}
	last := idx.store.LastPublish()
	if last.IsZero() || time.Since(last) > idx.freshness {
		return triggerFreshness
	}
	return ""
}

// runReconcile performs one cycle under the at-most-one guard. On error the
// previous snapshot stays published and the cycle is retried on a later tick.
func (idx *Indexer) runReconcile(reason string) {
	if !idx.tryStartReconcile() {
		logging.Debug("Reconciliation already in progress, skipping (%s)", reason)
		return
	}
	defer idx.finishReconcile()

	metrics.ReconcileIsRunning.Set(1)
	defer metrics.ReconcileIsRunning.Set(0)
	metrics.ReconcileRunsTotal.Inc()
	metrics.ReconcileTriggersTotal.WithLabelValues(reason).Inc()

	logging.Debug("Reconciliation starting (%s)", reason)

	records, stats, err := idx.reconciler.Reconcile(idx.store.Current())
	if err != nil {
		metrics.ReconcileErrors.Inc()
		logging.Error("Reconciliation abandoned, keeping previous snapshot: %v", err)
		idx.recordInitialError(err)
		return
	}

	snap := idx.store.Publish(records)
	idx.recordSuccess(stats)

	metrics.ReconcileLastRunTimestamp.Set(float64(time.Now().Unix()))
	metrics.ReconcileLastRunDuration.Set(stats.Duration.Seconds())

	logging.Info("Snapshot v%d published: %d records (%d reused, %d rebuilt, %d skipped) in %v",
		snap.Version, len(records), stats.Reused, stats.Rebuilt, stats.Skipped, stats.Duration)
}

// tryStartReconcile attempts to start a cycle, returns false if one is
// already in flight.
func (idx *Indexer) tryStartReconcile() bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.isReconciling {
		return false
	}
	idx.isReconciling = true
	return true
}

func (idx *Indexer) finishReconcile() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.isReconciling = false
}

func (idx *Indexer) recordSuccess(stats ReconcileStats) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.lastReconcile = time.Now()
	idx.lastStats = stats
	idx.initialDone = true
	idx.initialError = nil
}

func (idx *Indexer) recordInitialError(err error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if !idx.initialDone {
		idx.initialError = err
	}
}

// TriggerReconcile manually requests a reconciliation. It returns
// immediately; if a cycle is already running the request is dropped (the
// caller can retry once IsReconciling reports false).
func (idx *Indexer) TriggerReconcile() {
	go idx.runReconcile(triggerManual)
}

// IsReconciling reports whether a cycle is currently in flight.
func (idx *Indexer) IsReconciling() bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.isReconciling
}

// IsReady reports whether the index can serve queries: true once the first
// successful reconciliation has published a snapshot.
func (idx *Indexer) IsReady() bool {
	return idx.store.HasData()
}

// LastReconcileTime returns the completion time of the last successful cycle.
func (idx *Indexer) LastReconcileTime() time.Time {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.lastReconcile
}

// LastStats returns the statistics of the last successful cycle.
func (idx *Indexer) LastStats() ReconcileStats {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.lastStats
}

// HealthStatus contains health check information.
type HealthStatus struct {
	Ready           bool      `json:"ready"`
	Reconciling     bool      `json:"reconciling"`
	StartTime       time.Time `json:"startTime"`
	Uptime          string    `json:"uptime"`
	LastReconciled  time.Time `json:"lastReconciled,omitempty"`
	InitialError    string    `json:"initialError,omitempty"`
	SnapshotVersion uint64    `json:"snapshotVersion"`
	RecordCount     int       `json:"recordCount"`
}

// GetHealthStatus returns detailed health information.
func (idx *Indexer) GetHealthStatus() HealthStatus {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	snap := idx.store.Current()
	status := HealthStatus{
		Ready:           idx.store.HasData(),
		Reconciling:     idx.isReconciling,
		StartTime:       idx.startTime,
		Uptime:          time.Since(idx.startTime).String(),
		LastReconciled:  idx.lastReconcile,
		SnapshotVersion: snap.Version,
		RecordCount:     len(snap.Records),
	}

	if idx.initialError != nil {
		status.InitialError = idx.initialError.Error()
	}

	return status
}
