// Package indexer builds and refreshes the file index. The Reconciler
// walks the root directory and produces a fresh record set, reusing
// unchanged records from the previous snapshot by comparing modification
// time and size. The Indexer schedules reconciliation runs: once at
// startup, then whenever the published snapshot ages past the freshness
// window or a filesystem change invalidates it.
package indexer
