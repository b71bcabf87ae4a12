package watcher

import (
	"sync"
	"time"

	"file-finder/internal/metrics"
)

// Debouncer collapses bursts of events per path: each event arms (or
// re-arms) that path's timer, and only a quiet period of the full delay
// fires the callback. Bursts across different paths fire independently.
type Debouncer struct {
	delay time.Duration
	fire  func(path string)

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewDebouncer creates a debouncer that calls fire once per path after the
// path has been quiet for delay.
func NewDebouncer(delay time.Duration, fire func(path string)) *Debouncer {
	return &Debouncer{
		delay:  delay,
		fire:   fire,
		timers: make(map[string]*time.Timer),
	}
}

// Trigger records an event for path, resetting its quiet-period timer.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.timers[path]; ok {
		timer.Reset(d.delay)
		return
	}

	d.timers[path] = time.AfterFunc(d.delay, func() {
		d.expire(path)
	})
	metrics.WatcherPendingTimers.Inc()
}

func (d *Debouncer) expire(path string) {
	d.mu.Lock()
	delete(d.timers, path)
	d.mu.Unlock()

	metrics.WatcherPendingTimers.Dec()
	d.fire(path)
}

// Stop cancels all pending timers. Timers that already fired are unaffected.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for path, timer := range d.timers {
		if timer.Stop() {
			metrics.WatcherPendingTimers.Dec()
		}
		delete(d.timers, path)
	}
}

// PendingCount returns the number of paths with an armed timer.
func (d *Debouncer) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}
