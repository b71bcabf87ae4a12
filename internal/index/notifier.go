package index

import (
	"context"

	"file-finder/internal/metrics"
)

// Notifier lets consumers block until the published snapshot version moves
// past a version they have already seen. Rapid successive publishes collapse:
// a waiting consumer observes only the latest version, never a backlog of
// intermediate ones. Waiters are woken by a closed channel, so a slow
// consumer cannot block the publisher or other consumers.
type Notifier struct {
	store *Store
}

// NewNotifier creates a notifier over the given store.
func NewNotifier(store *Store) *Notifier {
	return &Notifier{store: store}
}

// AwaitChange blocks until the snapshot version exceeds since, then returns
// the current (latest) version. It returns ctx.Err() if the context ends
// first. Passing since=0 returns as soon as any snapshot has been published.
func (n *Notifier) AwaitChange(ctx context.Context, since uint64) (uint64, error) {
	metrics.NotifierSubscribers.Inc()
	defer metrics.NotifierSubscribers.Dec()

	for {
		if v := n.store.Current().Version; v > since {
			return v, nil
		}

		// Grab the signal channel first, then re-check the version: a publish
		// between the check above and here would otherwise be missed.
		ch := n.store.changeSignal()
		if v := n.store.Current().Version; v > since {
			return v, nil
		}

		select {
		case <-ch:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

// Current returns the latest published version without blocking.
func (n *Notifier) Current() uint64 {
	return n.store.Current().Version
}
