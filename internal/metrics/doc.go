// Package metrics defines the Prometheus metrics exported by the file
// finder: HTTP request metrics, reconciliation and scan outcomes, watcher
// event and debounce counters, filesystem retry counters, and gauges
// describing the currently published snapshot.
package metrics
