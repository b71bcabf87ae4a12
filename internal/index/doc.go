// Package index holds the in-memory file index: the immutable snapshot
// model, the store that publishes snapshots through an atomic pointer swap,
// the notifier that wakes consumers on version changes, and the pure query
// engine that filters and paginates a snapshot.
//
// The index is memory-resident by design. It is rebuilt from the filesystem
// on startup and kept fresh by the reconciler; nothing is persisted.
package index
