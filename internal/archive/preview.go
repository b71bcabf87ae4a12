package archive

import (
	"archive/zip"

	"file-finder/internal/logging"
)

// MaxPreviewEntries is the maximum number of archive entry names included
// in a preview.
const MaxPreviewEntries = 5

// Preview holds the leading entry names of an archive. A nil *Preview means
// no preview is available, which is distinct from an archive that is simply
// empty (non-nil Preview with zero entries).
type Preview struct {
	// Entries are up to MaxPreviewEntries names in archive order.
	Entries []string `json:"entries"`
	// Truncated is true if the archive contains more entries than the preview.
	Truncated bool `json:"truncated,omitempty"`
}

// ZipPreview returns a preview of the first entries in a ZIP archive.
// Preview is best-effort: any failure (corrupt archive, unsupported
// compression, I/O error) returns nil rather than an error, so a bad
// archive never fails the indexing of its file record.
func ZipPreview(path string) *Preview {
	r, err := zip.OpenReader(path)
	if err != nil {
		logging.Debug("archive preview unavailable for %s: %v", path, err)
		return nil
	}
	defer r.Close()

	preview := &Preview{Entries: make([]string, 0, MaxPreviewEntries)}
	for _, f := range r.File {
		if len(preview.Entries) >= MaxPreviewEntries {
			preview.Truncated = true
			break
		}
		preview.Entries = append(preview.Entries, f.Name)
	}
	return preview
}
