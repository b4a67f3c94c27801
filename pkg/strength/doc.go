// Package strength assesses line and riser strength the APPI way.
//
// load.go distributes the maximum flying weight across rows by the fixed
// per-row percentage tables. threshold.go derives warning and reject limits
// from the as-new breaking strength, and evaluate.go judges a destructive
// test result against them. material.go classifies a line by manufacturer
// and specification text and returns the testing guidance for the material.
// loadtest.go computes the non-destructive test load for one line.
//
// Unsupported row counts yield empty results, not errors. Values the engine
// cannot compute on are rejected with *types.ValidationError.
package strength
