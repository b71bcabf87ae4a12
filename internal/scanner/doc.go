// Package scanner enumerates indexable files under the records root.
//
// The scan is the first pass of the two-pass reconciliation design: it only
// collects qualifying (path, extension) pairs and defers all stat and
// metadata derivation to the reconciler, so an enumeration failure in one
// subtree never aborts processing of already-discovered paths.
package scanner
