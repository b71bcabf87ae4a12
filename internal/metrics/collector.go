package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Snapshot gauges updated by the collector.
var (
	SnapshotRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_finder_snapshot_records",
			Help: "Number of file records in the current snapshot",
		},
	)

	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_finder_snapshot_version",
			Help: "Version of the current snapshot",
		},
	)

	SnapshotAgeSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_finder_snapshot_age_seconds",
			Help: "Age of the current snapshot in seconds",
		},
	)
)

// SnapshotInfo describes the currently published snapshot for metrics export.
type SnapshotInfo struct {
	Records int
	Version uint64
	BuiltAt time.Time
}

// SnapshotProvider supplies snapshot information to the collector.
// Implemented by the index store.
type SnapshotProvider interface {
	SnapshotInfo() SnapshotInfo
}

// Collector periodically refreshes the snapshot gauges from the index store.
type Collector struct {
	provider SnapshotProvider
	interval time.Duration
	stopChan chan struct{}
}

// NewCollector creates a new metrics collector.
func NewCollector(provider SnapshotProvider, interval time.Duration) *Collector {
	return &Collector{
		provider: provider,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the metrics collection loop.
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection.
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.provider == nil {
		return
	}

	info := c.provider.SnapshotInfo()

	SnapshotRecords.Set(float64(info.Records))
	SnapshotVersion.Set(float64(info.Version))
	if !info.BuiltAt.IsZero() {
		SnapshotAgeSeconds.Set(time.Since(info.BuiltAt).Seconds())
	}
}
