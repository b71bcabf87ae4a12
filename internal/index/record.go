package index

import (
	"sort"
	"time"

	"file-finder/internal/archive"
	"file-finder/internal/filetypes"
)

// FileRecord is one indexed file. Records are immutable once built and are
// shared by pointer across snapshots when the underlying file is unchanged.
type FileRecord struct {
	// Name is the base file name.
	Name string `json:"name"`
	// RelativePath is the path relative to the indexed root, slash-separated.
	RelativePath string `json:"path"`
	// AbsolutePath is the fully resolved path. It is the reconciliation key
	// and is used for serving file content; it is never exposed to callers.
	AbsolutePath string `json:"-"`
	// SizeBytes is the file size in bytes.
	SizeBytes int64 `json:"sizeBytes"`
	// ModifiedAt is the file modification time.
	ModifiedAt time.Time `json:"modifiedAt"`
	// Folder is the parent directory relative to root, "/" for top-level files.
	Folder string `json:"folder"`
	// Extension is the normalized file extension.
	Extension filetypes.Extension `json:"extension"`
	// Preview holds the leading archive entry names for archive files.
	// nil means no preview: not an archive, or extraction failed.
	Preview *archive.Preview `json:"archivePreview,omitempty"`
}

// Snapshot is an immutable point-in-time view of all indexed records,
// sorted by ModifiedAt descending with ties broken by AbsolutePath.
// Snapshots are published whole by the store and never mutated afterward.
type Snapshot struct {
	Records []*FileRecord
	Version uint64
	BuiltAt time.Time
}

// SortRecords orders records by modification time, newest first.
// Ties are broken by AbsolutePath ascending so the order is deterministic.
func SortRecords(records []*FileRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].ModifiedAt.Equal(records[j].ModifiedAt) {
			return records[i].ModifiedAt.After(records[j].ModifiedAt)
		}
		return records[i].AbsolutePath < records[j].AbsolutePath
	})
}

// ByAbsolutePath returns a lookup table of the snapshot's records keyed by
// their reconciliation key.
func (s *Snapshot) ByAbsolutePath() map[string]*FileRecord {
	m := make(map[string]*FileRecord, len(s.Records))
	for _, rec := range s.Records {
		m[rec.AbsolutePath] = rec
	}
	return m
}
