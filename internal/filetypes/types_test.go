package filetypes

import "testing"

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want Extension
	}{
		{"report.pdf", ExtPDF},
		{"Report.PDF", ExtPDF},
		{"notes.docx", ExtWord},
		{"budget.XLSX", ExtExcel},
		{"backup.zip", ExtZip},
		{"archive.tar.gz", "gz"},
		{"README", ""},
		{".hidden", "hidden"},
	}

	for _, tt := range tests {
		if got := FromName(tt.name); got != tt.want {
			t.Errorf("FromName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSupportedSet(t *testing.T) {
	set := Supported()

	for _, ext := range []Extension{ExtPDF, ExtWord, ExtExcel, ExtZip} {
		if !set.Contains(ext) {
			t.Errorf("Expected %q to be supported", ext)
		}
	}

	if set.Contains("exe") {
		t.Error("Expected exe to be unsupported")
	}

	if set.Contains("") {
		t.Error("Expected empty extension to be unsupported")
	}
}

func TestSetList(t *testing.T) {
	list := Supported().List()

	if len(list) != 4 {
		t.Fatalf("Expected 4 supported extensions, got %d", len(list))
	}

	for i := 1; i < len(list); i++ {
		if list[i] < list[i-1] {
			t.Errorf("List not sorted: %q before %q", list[i-1], list[i])
		}
	}
}

func TestIsArchive(t *testing.T) {
	if !IsArchive(ExtZip) {
		t.Error("Expected zip to be an archive type")
	}
	if IsArchive(ExtPDF) {
		t.Error("Expected pdf to not be an archive type")
	}
}

func TestGetMimeType(t *testing.T) {
	if mime := GetMimeType(ExtPDF); mime != "application/pdf" {
		t.Errorf("Expected application/pdf, got %s", mime)
	}
	if mime := GetMimeType("unknown"); mime != "application/octet-stream" {
		t.Errorf("Expected application/octet-stream fallback, got %s", mime)
	}
}

func TestGetLabel(t *testing.T) {
	if label := GetLabel(ExtWord); label != "Word" {
		t.Errorf("Expected Word, got %s", label)
	}
	if label := GetLabel("csv"); label != "CSV" {
		t.Errorf("Expected CSV fallback, got %s", label)
	}
}
