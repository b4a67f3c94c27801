// Package types defines the shared vocabulary of the assessment engines and
// their callers: line rows, lateral groups, sides, measurement methods and the
// input records a workshop session hands to the engines.
//
// These are transient values. The engines construct nothing persistent from
// them; the server and the workbench decode them from JSON or YAML and pass
// them straight through.
//
// ValidationError is the single error type the engines return for invalid
// input. Missing data is never an error.
package types
