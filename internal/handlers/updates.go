package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"file-finder/internal/logging"
)

// StreamUpdates is a Server-Sent Events endpoint that emits one event per
// published snapshot version. Versions skipped while the client was
// processing are collapsed into the latest one. A reconnecting client sends
// Last-Event-ID so no version boundary is ever missed.
func (h *Handlers) StreamUpdates(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	since := h.notifier.Current()
	if lastID := r.Header.Get("Last-Event-ID"); lastID != "" {
		if parsed, err := strconv.ParseUint(lastID, 10, 64); err == nil {
			since = parsed
		}
	}

	// Tell the client where it stands before the first change arrives.
	snap := h.store.Current()
	fmt.Fprintf(w, "id: %d\nevent: snapshot\ndata: {\"version\":%d,\"records\":%d}\n\n",
		snap.Version, snap.Version, len(snap.Records))
	flusher.Flush()

	if snap.Version > since {
		since = snap.Version
	}

	for {
		version, err := h.notifier.AwaitChange(r.Context(), since)
		if err != nil {
			// Client disconnected.
			logging.Debug("Update stream closed: %v", err)
			return
		}

		snap := h.store.Current()
		fmt.Fprintf(w, "id: %d\nevent: update\ndata: {\"version\":%d,\"records\":%d}\n\n",
			version, version, len(snap.Records))
		flusher.Flush()

		since = version
	}
}

// CheckRefresh is the polling variant of StreamUpdates: given the version a
// client last saw, it reports whether a newer snapshot exists.
func (h *Handlers) CheckRefresh(w http.ResponseWriter, r *http.Request) {
	since := uint64(0)
	if s := r.URL.Query().Get("since"); s != "" {
		parsed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			writeJSONError(w, "Invalid since version", http.StatusBadRequest)
			return
		}
		since = parsed
	}

	snap := h.store.Current()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, map[string]interface{}{
		"refreshNeeded": snap.Version > since,
		"version":       snap.Version,
		"records":       len(snap.Records),
	})
}
