// Package archive extracts bounded previews of archive contents for the
// index. Previews are best-effort: unreadable archives yield an absent
// preview, never an indexing error.
package archive
