// Package filetypes defines the registry of file extensions the index
// recognizes, along with their filter labels and MIME types.
//
// Supported types:
//   - Documents: pdf, docx
//   - Spreadsheets: xlsx
//   - Archives: zip (entry names are previewed during indexing)
package filetypes
