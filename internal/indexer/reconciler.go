package indexer

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"file-finder/internal/archive"
	"file-finder/internal/filesystem"
	"file-finder/internal/filetypes"
	"file-finder/internal/index"
	"file-finder/internal/logging"
	"file-finder/internal/metrics"
	"file-finder/internal/scanner"
	"file-finder/internal/workers"
)

// Cap on record-building workers; the work is I/O-bound stat/read traffic
// and too many concurrent readers hurt NFS mounts.
const maxBuildWorkers = 8

// Reconciler produces a fresh record set from the filesystem and the
// previous snapshot. Records whose modification time and size are unchanged
// are carried over by pointer: an unchanged file costs one stat call, not a
// re-derivation of its metadata or archive preview.
type Reconciler struct {
	root       string
	supported  filetypes.Set
	numWorkers int
}

// NewReconciler creates a reconciler over the given root directory.
func NewReconciler(root string, supported filetypes.Set) (*Reconciler, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory: %w", err)
	}
	return &Reconciler{
		root:       absRoot,
		supported:  supported,
		numWorkers: workers.ForIO(maxBuildWorkers),
	}, nil
}

// Root returns the absolute root directory being indexed.
func (r *Reconciler) Root() string {
	return r.root
}

// ReconcileStats summarizes one reconciliation cycle.
type ReconcileStats struct {
	Scanned  int           `json:"scanned"`
	Reused   int           `json:"reused"`
	Rebuilt  int           `json:"rebuilt"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"-"`
}

// buildJob pairs a scan entry with its stat result for the build pool.
type buildJob struct {
	entry scanner.Entry
	info  os.FileInfo
}

// Reconcile walks the root and returns the records for the next snapshot.
//
// Two-pass design: enumerate all qualifying paths first, then process each,
// so an enumeration failure in one subtree never aborts paths already found.
// Paths present in prev but absent from the walk are dropped implicitly.
// A failed walk of the root aborts the whole cycle with an error; the caller
// keeps the previous snapshot published and retries on its next tick.
func (r *Reconciler) Reconcile(prev *index.Snapshot) ([]*index.FileRecord, ReconcileStats, error) {
	start := time.Now()
	var stats ReconcileStats

	entries, err := scanner.Scan(r.root, r.supported)
	if err != nil {
		return nil, stats, fmt.Errorf("reconcile scan failed: %w", err)
	}
	stats.Scanned = len(entries)

	prevByPath := prev.ByAbsolutePath()

	records := make([]*index.FileRecord, 0, len(entries))
	var jobs []buildJob

	for _, entry := range entries {
		info, err := filesystem.StatWithRetry(entry.AbsolutePath, filesystem.DefaultRetryConfig())
		if err != nil {
			// Lost a race with deletion; the path is simply absent from
			// this snapshot.
			logging.Debug("Skipping vanished file %s: %v", entry.AbsolutePath, err)
			stats.Skipped++
			continue
		}

		if prevRec, ok := prevByPath[entry.AbsolutePath]; ok &&
			prevRec.ModifiedAt.Equal(info.ModTime()) &&
			prevRec.SizeBytes == info.Size() {
			records = append(records, prevRec)
			stats.Reused++
			continue
		}

		jobs = append(jobs, buildJob{entry: entry, info: info})
	}

	built, buildSkipped := r.buildRecords(jobs)
	records = append(records, built...)
	stats.Rebuilt = len(built)
	stats.Skipped += buildSkipped
	stats.Duration = time.Since(start)

	metrics.ReconcileRecordsTotal.WithLabelValues("reused").Add(float64(stats.Reused))
	metrics.ReconcileRecordsTotal.WithLabelValues("rebuilt").Add(float64(stats.Rebuilt))
	metrics.ReconcileRecordsTotal.WithLabelValues("skipped").Add(float64(stats.Skipped))

	return records, stats, nil
}

// buildRecords derives fresh records on a bounded worker pool. Building is
// I/O-bound (archive previews read the file), so the pool is sized for I/O.
func (r *Reconciler) buildRecords(jobs []buildJob) ([]*index.FileRecord, int) {
	if len(jobs) == 0 {
		return nil, 0
	}

	n := r.numWorkers
	if n > len(jobs) {
		n = len(jobs)
	}

	jobCh := make(chan buildJob)
	var mu sync.Mutex
	var out []*index.FileRecord
	var skipped atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				rec, err := r.buildRecord(job.entry, job.info)
				if err != nil {
					logging.Debug("Skipping record for %s: %v", job.entry.AbsolutePath, err)
					skipped.Add(1)
					continue
				}
				mu.Lock()
				out = append(out, rec)
				mu.Unlock()
			}
		}()
	}

	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)
	wg.Wait()

	return out, int(skipped.Load())
}

// buildRecord derives a full FileRecord, including the archive preview for
// archive types. Preview failure degrades to an absent preview and never
// fails the record.
func (r *Reconciler) buildRecord(entry scanner.Entry, info os.FileInfo) (*index.FileRecord, error) {
	relPath, err := filepath.Rel(r.root, entry.AbsolutePath)
	if err != nil {
		return nil, fmt.Errorf("failed to relativize %s: %w", entry.AbsolutePath, err)
	}
	rel := filepath.ToSlash(relPath)

	folder := path.Dir(rel)
	if folder == "." {
		folder = "/"
	}

	rec := &index.FileRecord{
		Name:         info.Name(),
		RelativePath: rel,
		AbsolutePath: entry.AbsolutePath,
		SizeBytes:    info.Size(),
		ModifiedAt:   info.ModTime(),
		Folder:       folder,
		Extension:    entry.Extension,
	}

	if filetypes.IsArchive(entry.Extension) {
		rec.Preview = archive.ZipPreview(entry.AbsolutePath)
	}

	return rec, nil
}
