// Package pkgmetrics exposes Prometheus metrics for the HTTP surface.
//
// Each Metrics value owns its own registry so tests and multiple routers do
// not collide on the global default registerer.
package pkgmetrics
