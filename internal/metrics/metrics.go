package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_finder_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "file_finder_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_finder_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Reconciler metrics
var (
	ReconcileRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "file_finder_reconcile_runs_total",
			Help: "Total number of reconciliation runs",
		},
	)

	ReconcileErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "file_finder_reconcile_errors_total",
			Help: "Total number of abandoned reconciliation cycles",
		},
	)

	ReconcileLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_finder_reconcile_last_run_timestamp",
			Help: "Timestamp of the last successful reconciliation",
		},
	)

	ReconcileLastRunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_finder_reconcile_last_run_duration_seconds",
			Help: "Duration of the last reconciliation in seconds",
		},
	)

	ReconcileRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_finder_reconcile_records_total",
			Help: "Records handled per reconciliation outcome",
		},
		[]string{"outcome"}, // "reused", "rebuilt", "skipped"
	)

	ReconcileIsRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_finder_reconcile_running",
			Help: "Whether a reconciliation is currently in flight (1 = running, 0 = idle)",
		},
	)

	ReconcileTriggersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_finder_reconcile_triggers_total",
			Help: "Reconciliations started per trigger reason",
		},
		[]string{"reason"}, // "initial", "freshness", "invalidation", "manual"
	)
)

// Scanner metrics
var (
	ScannerEntriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "file_finder_scanner_entries_total",
			Help: "Total number of qualifying entries yielded by directory scans",
		},
	)

	ScannerWalkErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "file_finder_scanner_walk_errors_total",
			Help: "Total number of entries skipped due to walk errors",
		},
	)

	ScannerWalkDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "file_finder_scanner_walk_duration_seconds",
			Help:    "Directory walk duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)
)

// Watcher metrics
var (
	WatcherEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_finder_watcher_events_total",
			Help: "Total number of filesystem events accepted by the watcher",
		},
		[]string{"op"}, // "create", "write", "remove", "rename"
	)

	WatcherInvalidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "file_finder_watcher_invalidations_total",
			Help: "Total number of invalidation signals emitted after debounce",
		},
	)

	WatcherPendingTimers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_finder_watcher_pending_timers",
			Help: "Number of paths with a pending debounce timer",
		},
	)

	WatcherErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "file_finder_watcher_errors_total",
			Help: "Total number of errors reported by the OS event source",
		},
	)
)

// Filesystem retry metrics (NFS resilience)
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_finder_fs_retry_attempts_total",
			Help: "Total number of filesystem operation retries",
		},
		[]string{"op"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_finder_fs_retry_success_total",
			Help: "Total number of filesystem operations that succeeded after retry",
		},
		[]string{"op"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_finder_fs_retry_failures_total",
			Help: "Total number of filesystem operations that exhausted their retries",
		},
		[]string{"op"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_finder_fs_stale_errors_total",
			Help: "Total number of NFS stale file handle errors observed",
		},
		[]string{"op"},
	)

	FilesystemRetryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "file_finder_fs_retry_duration_seconds",
			Help:    "Total duration of filesystem operations including retries",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		},
		[]string{"op"},
	)
)

// Notifier metrics
var (
	NotifierSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_finder_notifier_subscribers",
			Help: "Number of consumers currently waiting for a version change",
		},
	)
)
