// Package handlers provides HTTP request handlers for the file index API.
//
// It includes handlers for:
//   - Querying the index with search, type, and date filters
//   - Serving indexed file content
//   - Update notification (SSE stream and version polling)
//   - Index statistics and manual reindexing
//   - Health checks and version information
package handlers
