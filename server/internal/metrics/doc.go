// Package metrics exposes the server's Prometheus metrics: assessments computed
// per kind and outcome, validation failures per kind, and computation time.
package metrics
