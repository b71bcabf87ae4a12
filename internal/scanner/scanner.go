package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"file-finder/internal/filetypes"
	"file-finder/internal/logging"
	"file-finder/internal/metrics"
)

// Entry is one qualifying file found during a scan.
type Entry struct {
	// AbsolutePath is the fully resolved path of the file.
	AbsolutePath string
	// Extension is the normalized extension, a member of the supported set.
	Extension filetypes.Extension
}

// Scan walks root recursively and returns every regular file whose extension
// is in the supported set. Entries that cannot be read mid-walk (permission
// denied, vanished between listing and stat) are skipped silently; a file can
// disappear between directory listing and processing without failing the
// scan. Hidden files and directories (dot-prefixed) are not descended into.
//
// The order of returned entries is filesystem-dependent. Callers must not
// rely on it.
//
// Only an unreadable root aborts the scan and returns an error.
func Scan(root string, supported filetypes.Set) ([]Entry, error) {
	start := time.Now()
	defer func() {
		metrics.ScannerWalkDuration.Observe(time.Since(start).Seconds())
	}()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scan root: %w", err)
	}

	var entries []Entry
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return fmt.Errorf("scan root unreadable: %w", err)
			}
			logging.Debug("Skipping unreadable path %s: %v", path, err)
			metrics.ScannerWalkErrors.Inc()
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") && path != absRoot {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		ext := filetypes.FromName(d.Name())
		if !supported.Contains(ext) {
			return nil
		}

		entries = append(entries, Entry{AbsolutePath: path, Extension: ext})
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	metrics.ScannerEntriesTotal.Add(float64(len(entries)))
	return entries, nil
}
