// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// This package centralizes all application configuration and provides consistent
// logging throughout the application lifecycle.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig].
// The following environment variables are supported:
//
//   - ROOT_DIR: Path to the indexed directory (default: /data)
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - PAGE_SIZE: Result page size for queries (default: 20)
//   - FRESHNESS_WINDOW: Maximum snapshot age as Go duration (default: 30s)
//   - TICK_INTERVAL: Scheduler polling interval as Go duration (default: 1s)
//   - DEBOUNCE_DELAY: Quiet period for filesystem events as Go duration (default: 500ms)
//   - WATCHER_ENABLED: Enable filesystem change watching (default: true)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_FILE_SERVING: Log file content requests (default: false)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//
// # Directory Setup
//
// The root directory is checked but never created; it should be mounted.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// # Lifecycle Logging
//
// The package provides structured logging functions for consistent output:
//   - [LogIndexerInit]: Indexer configuration and intervals
//   - [LogWatcherInit]: Watcher configuration and debounce delay
//   - [LogHTTPRoutes]: Registered HTTP routes (debug level)
//   - [LogServerStarted]: Server endpoints and startup duration
//   - [LogShutdownInitiated]: Graceful shutdown start
//   - [LogShutdownComplete]: Shutdown completion
package startup
