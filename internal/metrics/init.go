package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, outcome := range []string{"reused", "rebuilt", "skipped"} {
		ReconcileRecordsTotal.WithLabelValues(outcome)
	}

	for _, reason := range []string{"initial", "freshness", "invalidation", "manual"} {
		ReconcileTriggersTotal.WithLabelValues(reason)
	}

	for _, op := range []string{"create", "write", "remove", "rename"} {
		WatcherEventsTotal.WithLabelValues(op)
	}

	for _, op := range []string{"stat", "open"} {
		FilesystemRetryAttempts.WithLabelValues(op)
		FilesystemRetrySuccess.WithLabelValues(op)
		FilesystemRetryFailures.WithLabelValues(op)
		FilesystemStaleErrors.WithLabelValues(op)
		FilesystemRetryDuration.WithLabelValues(op)
	}
}
