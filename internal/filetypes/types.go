package filetypes

import (
	"path/filepath"
	"strings"
)

// Extension is a normalized (lower-case, no leading dot) file extension.
type Extension string

const (
	// ExtPDF represents a PDF document.
	ExtPDF Extension = "pdf"
	// ExtWord represents a Word document.
	ExtWord Extension = "docx"
	// ExtExcel represents an Excel workbook.
	ExtExcel Extension = "xlsx"
	// ExtZip represents a ZIP archive.
	ExtZip Extension = "zip"
)

// Labels maps supported extensions to their human-readable filter labels.
var Labels = map[Extension]string{
	ExtPDF:   "PDF",
	ExtWord:  "Word",
	ExtExcel: "Excel",
	ExtZip:   "ZIP",
}

// MimeTypes maps supported extensions to their MIME types.
var MimeTypes = map[Extension]string{
	ExtPDF:   "application/pdf",
	ExtWord:  "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	ExtExcel: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	ExtZip:   "application/zip",
}

// Supported returns the full set of indexable extensions.
func Supported() Set {
	return Set{
		ExtPDF:   true,
		ExtWord:  true,
		ExtExcel: true,
		ExtZip:   true,
	}
}

// Set is a membership set of extensions eligible for indexing.
type Set map[Extension]bool

// Contains returns true if ext is a member of the set.
func (s Set) Contains(ext Extension) bool {
	return s[ext]
}

// List returns the members of the set in sorted order.
func (s Set) List() []Extension {
	out := make([]Extension, 0, len(s))
	for ext := range s {
		out = append(out, ext)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// FromName extracts the normalized extension of a file name: the text after
// the final dot, lower-cased. Returns "" if the name has no extension.
func FromName(name string) Extension {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return Extension(strings.ToLower(strings.TrimPrefix(ext, ".")))
}

// IsArchive returns true if the extension denotes an archive container
// whose entry names can be previewed.
func IsArchive(ext Extension) bool {
	return ext == ExtZip
}

// GetMimeType returns the MIME type for a supported extension.
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(ext Extension) string {
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

// GetLabel returns the filter label for a supported extension, or the
// upper-cased extension itself if no label is registered.
func GetLabel(ext Extension) string {
	if label, ok := Labels[ext]; ok {
		return label
	}
	return strings.ToUpper(string(ext))
}
