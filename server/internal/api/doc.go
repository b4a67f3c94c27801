// Package api implements the HTTP REST API for wingcheck-server.
//
// New(catalog, store, metrics, logger, trimOptions) returns an http.Handler
// that serves:
//
//	GET  /api/v1/health                 status, model and assessment counts, metric totals
//	GET  /api/v1/models                 reference catalog summaries
//	GET  /api/v1/models/{id}            one model with classified line materials; 404 if unknown
//	POST /api/v1/trim/analyze           trim result and hints, geometry by model_id or inline
//	POST /api/v1/strength/distribution  per-row load split
//	POST /api/v1/strength/thresholds    destructive-test limits per line record
//	POST /api/v1/strength/evaluate      destructive-test judgment, material and guidance
//	POST /api/v1/strength/load-test     non-destructive test load with breakdown
//	POST /api/v1/cloth/summary          per-point cloth evaluations and session summary
//	GET  /api/v1/assessments            recent assessments, newest first
//
// All endpoints:
//   - Respond with Content-Type: application/json
//   - Return 405 for the wrong method and 400 for malformed JSON
//   - Return 422 with {"error", "field"} when an engine rejects the input
//
// Every POST is recorded in the store and counted in metrics. JSON types are
// defined in types.go and hints in hints.go. No external HTTP framework is used.
package api
