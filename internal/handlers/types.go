package handlers

import (
	"net/http"

	"file-finder/internal/filetypes"
)

// TypeInfo describes one indexable file type for filter dropdowns.
type TypeInfo struct {
	Extension string `json:"extension"`
	Label     string `json:"label"`
	MimeType  string `json:"mimeType"`
}

// GetTypes returns the fixed set of indexable file types.
func (h *Handlers) GetTypes(w http.ResponseWriter, _ *http.Request) {
	supported := filetypes.Supported().List()
	types := make([]TypeInfo, 0, len(supported))
	for _, ext := range supported {
		types = append(types, TypeInfo{
			Extension: string(ext),
			Label:     filetypes.GetLabel(ext),
			MimeType:  filetypes.GetMimeType(ext),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	writeJSON(w, types)
}
