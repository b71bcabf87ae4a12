// Package middleware provides HTTP middleware for the file index service.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics with bounded path cardinality
//   - Response compression (gzip) that leaves the event stream untouched
package middleware
