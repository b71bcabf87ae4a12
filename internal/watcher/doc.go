// Package watcher turns filesystem notifications into index invalidations.
// It watches the indexed directory tree with fsnotify, follows directory
// creations so new subtrees stay covered, and debounces per-path event
// bursts before flagging the index as stale.
package watcher
