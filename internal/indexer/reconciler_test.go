package indexer

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"file-finder/internal/filetypes"
	"file-finder/internal/index"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}

func writeZip(t *testing.T, path string, names []string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to add zip entry: %v", err)
		}
		if _, err := w.Write([]byte("x")); err != nil {
			t.Fatalf("Failed to write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
}

func newTestReconciler(t *testing.T, root string) *Reconciler {
	t.Helper()
	r, err := NewReconciler(root, filetypes.Supported())
	if err != nil {
		t.Fatalf("NewReconciler failed: %v", err)
	}
	return r
}

func emptySnapshot() *index.Snapshot {
	return index.NewStore().Current()
}

func TestReconcileBuildsRecords(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "report.pdf"), "pdf content")
	writeFile(t, filepath.Join(root, "docs", "notes.docx"), "doc content")
	writeFile(t, filepath.Join(root, "readme.txt"), "ignored")
	writeFile(t, filepath.Join(root, ".hidden.pdf"), "ignored")

	r := newTestReconciler(t, root)
	records, stats, err := r.Reconcile(emptySnapshot())
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if stats.Rebuilt != 2 {
		t.Errorf("Expected 2 rebuilt, got %d", stats.Rebuilt)
	}
	if stats.Reused != 0 {
		t.Errorf("Expected 0 reused, got %d", stats.Reused)
	}

	byName := make(map[string]*index.FileRecord)
	for _, rec := range records {
		byName[rec.Name] = rec
	}

	pdf := byName["report.pdf"]
	if pdf == nil {
		t.Fatal("report.pdf not indexed")
	}
	if pdf.Folder != "/" {
		t.Errorf("Expected folder /, got %q", pdf.Folder)
	}
	if pdf.Extension != filetypes.ExtPDF {
		t.Errorf("Expected extension pdf, got %q", pdf.Extension)
	}
	if pdf.RelativePath != "report.pdf" {
		t.Errorf("Expected path report.pdf, got %q", pdf.RelativePath)
	}
	if pdf.SizeBytes != int64(len("pdf content")) {
		t.Errorf("Expected size %d, got %d", len("pdf content"), pdf.SizeBytes)
	}

	doc := byName["notes.docx"]
	if doc == nil {
		t.Fatal("notes.docx not indexed")
	}
	if doc.Folder != "docs" {
		t.Errorf("Expected folder docs, got %q", doc.Folder)
	}
}

func TestReconcileReusesUnchangedRecords(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "report.pdf"), "content")

	r := newTestReconciler(t, root)
	store := index.NewStore()

	records, _, err := r.Reconcile(store.Current())
	if err != nil {
		t.Fatalf("First reconcile failed: %v", err)
	}
	snap := store.Publish(records)
	first := snap.Records[0]

	records, stats, err := r.Reconcile(snap)
	if err != nil {
		t.Fatalf("Second reconcile failed: %v", err)
	}
	if stats.Reused != 1 {
		t.Errorf("Expected 1 reused, got %d", stats.Reused)
	}
	if stats.Rebuilt != 0 {
		t.Errorf("Expected 0 rebuilt, got %d", stats.Rebuilt)
	}
	if records[0] != first {
		t.Error("Expected unchanged record to be carried over by pointer")
	}
}

func TestReconcileRebuildsModifiedFiles(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "report.pdf")
	writeFile(t, path, "v1")

	r := newTestReconciler(t, root)
	store := index.NewStore()

	records, _, err := r.Reconcile(store.Current())
	if err != nil {
		t.Fatalf("First reconcile failed: %v", err)
	}
	snap := store.Publish(records)
	first := snap.Records[0]

	writeFile(t, path, "version two")
	newTime := first.ModifiedAt.Add(2 * time.Second)
	if err := os.Chtimes(path, newTime, newTime); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	records, stats, err := r.Reconcile(snap)
	if err != nil {
		t.Fatalf("Second reconcile failed: %v", err)
	}
	if stats.Rebuilt != 1 {
		t.Errorf("Expected 1 rebuilt, got %d", stats.Rebuilt)
	}
	if records[0] == first {
		t.Error("Expected modified file to get a fresh record")
	}
	if records[0].SizeBytes != int64(len("version two")) {
		t.Errorf("Expected updated size %d, got %d", len("version two"), records[0].SizeBytes)
	}
}

func TestReconcileDropsDeletedFiles(t *testing.T) {
	root := t.TempDir()
	keep := filepath.Join(root, "keep.pdf")
	gone := filepath.Join(root, "gone.pdf")
	writeFile(t, keep, "a")
	writeFile(t, gone, "b")

	r := newTestReconciler(t, root)
	store := index.NewStore()

	records, _, err := r.Reconcile(store.Current())
	if err != nil {
		t.Fatalf("First reconcile failed: %v", err)
	}
	snap := store.Publish(records)
	if len(snap.Records) != 2 {
		t.Fatalf("Expected 2 records before deletion, got %d", len(snap.Records))
	}

	if err := os.Remove(gone); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	records, _, err = r.Reconcile(snap)
	if err != nil {
		t.Fatalf("Second reconcile failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record after deletion, got %d", len(records))
	}
	if records[0].Name != "keep.pdf" {
		t.Errorf("Expected keep.pdf to survive, got %q", records[0].Name)
	}
}

func TestReconcileArchivePreview(t *testing.T) {
	root := t.TempDir()
	writeZip(t, filepath.Join(root, "bundle.zip"),
		[]string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt", "f.txt", "g.txt"})

	r := newTestReconciler(t, root)
	store := index.NewStore()

	records, _, err := r.Reconcile(store.Current())
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Preview == nil {
		t.Fatal("Expected archive preview")
	}
	if len(rec.Preview.Entries) != 5 {
		t.Errorf("Expected 5 preview entries, got %d", len(rec.Preview.Entries))
	}
	if !rec.Preview.Truncated {
		t.Error("Expected preview to be marked truncated")
	}

	// An unchanged archive keeps its record, so the preview is derived once.
	snap := store.Publish(records)
	records, _, err = r.Reconcile(snap)
	if err != nil {
		t.Fatalf("Second reconcile failed: %v", err)
	}
	if records[0] != rec {
		t.Error("Expected unchanged archive record to be reused")
	}
}

func TestReconcileCorruptArchive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "broken.zip"), "not a zip file")

	r := newTestReconciler(t, root)
	records, _, err := r.Reconcile(emptySnapshot())
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Preview != nil {
		t.Error("Expected no preview for corrupt archive")
	}
}

func TestReconcileMissingRoot(t *testing.T) {
	r := newTestReconciler(t, filepath.Join(t.TempDir(), "does-not-exist"))
	_, _, err := r.Reconcile(emptySnapshot())
	if err == nil {
		t.Error("Expected error for missing root")
	}
}
