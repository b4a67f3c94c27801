package trim

import (
	"math"

	"github.com/wingcheck/wingcheck/internal/numeric"
	"github.com/wingcheck/wingcheck/pkg/types"
)

// Stats aggregates the differentials of a set of complete cells.
type Stats struct {
	Cells             int     `json:"cells"`
	MeanDeviationMm   float64 `json:"mean_deviation_mm"`
	MaxAbsDeviationMm float64 `json:"max_abs_deviation_mm"`
	// Exceeding counts cells with |differential| strictly above tolerance.
	Exceeding int `json:"exceeding"`
}

// RowSummary aggregates one row across its groups.
type RowSummary struct {
	Row types.Row `json:"row"`
	Stats
}

// GroupSummary aggregates one group across its rows.
type GroupSummary struct {
	Group types.Group `json:"group"`
	Stats
}

// SummarizeRows aggregates complete cells per row, front-to-back. Rows with no
// complete cell are omitted.
func SummarizeRows(cells []CellDeviation, tolerance float64) []RowSummary {
	var out []RowSummary
	for _, row := range types.Rows(types.MaxRows) {
		if s, ok := stats(cells, tolerance, func(c CellDeviation) bool { return c.Row == row }); ok {
			out = append(out, RowSummary{Row: row, Stats: s})
		}
	}
	return out
}

// SummarizeGroups aggregates complete cells per group, in display order.
// Groups with no complete cell are omitted.
func SummarizeGroups(cells []CellDeviation, tolerance float64) []GroupSummary {
	var out []GroupSummary
	for _, group := range types.Groups() {
		if s, ok := stats(cells, tolerance, func(c CellDeviation) bool { return c.Group == group }); ok {
			out = append(out, GroupSummary{Group: group, Stats: s})
		}
	}
	return out
}

func stats(cells []CellDeviation, tolerance float64, match func(CellDeviation) bool) (Stats, bool) {
	var devs []float64
	var s Stats
	for _, c := range cells {
		if !c.Complete || !match(c) {
			continue
		}
		devs = append(devs, c.DifferentialMm)
		if math.Abs(c.DifferentialMm) > tolerance {
			s.Exceeding++
		}
	}
	mean, ok := numeric.Mean(devs)
	if !ok {
		return Stats{}, false
	}
	s.Cells = len(devs)
	s.MeanDeviationMm = mean
	s.MaxAbsDeviationMm = numeric.MaxAbs(devs)
	return s, true
}
