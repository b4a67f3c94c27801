// Package trim turns measured line lengths into a trim assessment.
//
// tolerance.go maps the flat aspect ratio to the APPI trim tolerance through a
// band table. plan.go derives the ordered (row, group) cells from the
// manufacturer line plan. deviation.go computes per-side deviations, the
// two-sided group differential and the left/right asymmetry per cell.
// summary.go aggregates cells per row and per group. shape.go classifies the
// deviation pattern; profile.go derives the pitch profile (reflex, accelerated,
// unstable) from row-to-row differentials. correction.go proposes signed
// adjustments and loop plans for out-of-tolerance sides.
//
// Analyze runs the whole pipeline. No measurements, or a plan with no cells,
// is a valid "not measured yet" state and yields an empty Result. Input naming
// a cell outside the plan is rejected with *types.ValidationError.
//
// Everything in this package is a pure function and safe for concurrent use.
package trim
