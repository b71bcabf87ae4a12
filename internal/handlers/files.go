package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"file-finder/internal/filesystem"
	"file-finder/internal/filetypes"
	"file-finder/internal/index"
	"file-finder/internal/logging"
)

const dateLayout = "2006-01-02"

// ListFiles answers the main query endpoint: free-text search, extension
// and date-range filters, and pagination over the current snapshot.
func (h *Handlers) ListFiles(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logging.Debug("ListFiles called: %s", r.URL.String())

	if !h.store.HasData() {
		writeJSONError(w, "Index is still building", http.StatusServiceUnavailable)
		return
	}

	opts := index.QueryOptions{
		Search:    r.URL.Query().Get("search"),
		Extension: r.URL.Query().Get("type"),
		Page:      1,
		PageSize:  h.pageSize,
	}

	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil && pageSize > 0 {
		opts.PageSize = pageSize
	}

	if from := r.URL.Query().Get("date_from"); from != "" {
		parsed, err := time.ParseInLocation(dateLayout, from, time.Local)
		if err != nil {
			writeJSONError(w, "Invalid date_from, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		opts.DateFrom = parsed
	}
	if to := r.URL.Query().Get("date_to"); to != "" {
		parsed, err := time.ParseInLocation(dateLayout, to, time.Local)
		if err != nil {
			writeJSONError(w, "Invalid date_to, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		opts.DateTo = parsed
	}

	result := index.Query(h.store.Current(), opts)

	logging.Debug("ListFiles completed in %v, %d of %d items",
		time.Since(start), len(result.Items), result.TotalItems)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, result)
}

// GetFile serves the content of an indexed file by its root-relative path.
func (h *Handlers) GetFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	filePath := vars["path"]

	fullPath, err := filesystem.ResolveFile(h.rootDir, filePath)
	if err != nil {
		switch {
		case errors.Is(err, filesystem.ErrInvalidPath):
			writeJSONError(w, "Invalid path", http.StatusBadRequest)
		case errors.Is(err, filesystem.ErrNotFound):
			writeJSONError(w, "File not found", http.StatusNotFound)
		default:
			logging.Error("GetFile failed for %s: %v", filePath, err)
			writeJSONError(w, "Failed to access file", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", filetypes.GetMimeType(filetypes.FromName(fullPath)))
	http.ServeFile(w, r, fullPath)
}
