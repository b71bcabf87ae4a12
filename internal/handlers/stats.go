package handlers

import (
	"net/http"
	"time"

	"file-finder/internal/indexer"
)

// StatsResponse summarizes the current snapshot and the last reconcile run.
type StatsResponse struct {
	Version        uint64                `json:"version"`
	Records        int                   `json:"records"`
	BuiltAt        time.Time             `json:"builtAt"`
	ByExtension    map[string]int        `json:"byExtension"`
	Reconciling    bool                  `json:"reconciling"`
	LastReconciled time.Time             `json:"lastReconciled,omitempty"`
	LastRun        indexer.ReconcileStats `json:"lastRun"`
}

// GetStats returns index statistics.
func (h *Handlers) GetStats(w http.ResponseWriter, _ *http.Request) {
	snap := h.store.Current()

	byExt := make(map[string]int)
	for _, rec := range snap.Records {
		byExt[string(rec.Extension)]++
	}

	response := StatsResponse{
		Version:        snap.Version,
		Records:        len(snap.Records),
		BuiltAt:        snap.BuiltAt,
		ByExtension:    byExt,
		Reconciling:    h.indexer.IsReconciling(),
		LastReconciled: h.indexer.LastReconcileTime(),
		LastRun:        h.indexer.LastStats(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, response)
}

// Reindex requests a manual reconciliation. It returns immediately; the
// run happens in the background and clients learn of the result through
// the update endpoints.
func (h *Handlers) Reindex(w http.ResponseWriter, _ *http.Request) {
	if h.indexer.IsReconciling() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		writeJSON(w, map[string]string{"status": "already_running"})
		return
	}

	h.indexer.TriggerReconcile()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, map[string]string{"status": "started"})
}
