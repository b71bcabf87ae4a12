package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"file-finder/internal/filetypes"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}

func TestScanFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "report.pdf"))
	writeFile(t, filepath.Join(root, "notes.docx"))
	writeFile(t, filepath.Join(root, "video.mp4"))
	writeFile(t, filepath.Join(root, "noextension"))
	writeFile(t, filepath.Join(root, "sub", "budget.xlsx"))

	entries, err := Scan(root, filetypes.Supported())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d: %v", len(entries), entries)
	}

	byPath := make(map[string]filetypes.Extension)
	for _, e := range entries {
		byPath[filepath.Base(e.AbsolutePath)] = e.Extension
	}

	if byPath["report.pdf"] != filetypes.ExtPDF {
		t.Errorf("Expected report.pdf with pdf extension, got %v", byPath)
	}
	if byPath["budget.xlsx"] != filetypes.ExtExcel {
		t.Errorf("Expected budget.xlsx with xlsx extension, got %v", byPath)
	}
	if _, found := byPath["video.mp4"]; found {
		t.Error("Expected unsupported video.mp4 to be excluded")
	}
}

func TestScanNormalizesCase(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "REPORT.PDF"))

	entries, err := Scan(root, filetypes.Supported())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Extension != filetypes.ExtPDF {
		t.Errorf("Expected normalized pdf extension, got %q", entries[0].Extension)
	}
}

func TestScanSkipsHidden(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".hidden.pdf"))
	writeFile(t, filepath.Join(root, ".cache", "stale.pdf"))
	writeFile(t, filepath.Join(root, "visible.pdf"))

	entries, err := Scan(root, filetypes.Supported())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d: %v", len(entries), entries)
	}
	if filepath.Base(entries[0].AbsolutePath) != "visible.pdf" {
		t.Errorf("Expected visible.pdf, got %s", entries[0].AbsolutePath)
	}
}

func TestScanReturnsAbsolutePaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "report.pdf"))

	entries, err := Scan(root, filetypes.Supported())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	for _, e := range entries {
		if !filepath.IsAbs(e.AbsolutePath) {
			t.Errorf("Expected absolute path, got %s", e.AbsolutePath)
		}
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"), filetypes.Supported()); err == nil {
		t.Error("Expected an error for a missing root directory")
	}
}

func TestScanEmptyRoot(t *testing.T) {
	entries, err := Scan(t.TempDir(), filetypes.Supported())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}
