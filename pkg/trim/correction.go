package trim

import (
	"math"

	"github.com/wingcheck/wingcheck/internal/numeric"
	"github.com/wingcheck/wingcheck/pkg/types"
)

// Action is what the technician should do with an out-of-tolerance line.
type Action string

const (
	ActionShorten   Action = "shorten"
	ActionLengthen  Action = "lengthen"
	ActionRemeasure Action = "remeasure"
)

// DefaultMaxAdjustmentMm is the largest adjustment suggested before a
// deviation is treated as a likely measurement error.
const DefaultMaxAdjustmentMm = 40.0

// loopShorteningMm is the approximate shortening per loop, by loop type.
var loopShorteningMm = map[int]float64{
	1: 10,
	2: 15,
	3: 25,
	4: 35,
	5: 45,
}

// LoopPlan is a shackle-loop configuration that approximates a shortening.
type LoopPlan struct {
	LoopType     int     `json:"loop_type"`
	Loops        int     `json:"loops"`
	ShorteningMm float64 `json:"shortening_mm"`
}

// Correction is a proposed adjustment to one side of a cell.
type Correction struct {
	types.Cell
	Side        types.Side `json:"side"`
	DeviationMm float64    `json:"deviation_mm"`

	// AdjustmentMm is the deviation rounded to the nearest 0.5 mm: positive
	// means shorten by that much, negative means lengthen. Zero when Action is
	// ActionRemeasure.
	AdjustmentMm float64 `json:"adjustment_mm"`
	Action       Action  `json:"action"`

	// Loops is set for ActionShorten.
	Loops *LoopPlan `json:"loops,omitempty"`

	// Positions are the 1-based plan positions of the lines in the cell.
	Positions []int `json:"positions,omitempty"`
}

// SuggestCorrections proposes an adjustment for every present side whose
// deviation exceeds tolerance, in cell order with left before right.
func SuggestCorrections(cells []CellDeviation, tolerance float64, opts Options) []Correction {
	limit := opts.maxAdjustment()
	var out []Correction
	for _, c := range cells {
		for _, side := range []types.Side{types.SideLeft, types.SideRight} {
			sd := c.Side(side)
			if !sd.Present || math.Abs(sd.DeviationMm) <= tolerance {
				continue
			}
			corr := Correction{Cell: c.Cell, Side: side, DeviationMm: sd.DeviationMm}
			adj := numeric.RoundHalf(sd.DeviationMm)
			switch {
			case math.Abs(adj) > limit:
				corr.Action = ActionRemeasure
			case adj > 0:
				corr.Action = ActionShorten
				corr.AdjustmentMm = adj
				plan := SelectLoops(adj)
				corr.Loops = &plan
			default:
				corr.Action = ActionLengthen
				corr.AdjustmentMm = adj
			}
			out = append(out, corr)
		}
	}
	return out
}

// SelectLoops picks the largest loop type whose per-loop shortening does not
// exceed target, with enough loops to approximate it. Targets smaller than
// every loop type get a single type 1 loop.
func SelectLoops(target float64) LoopPlan {
	for t := len(loopShorteningMm); t >= 1; t-- {
		per := loopShorteningMm[t]
		if per <= target {
			n := int(math.Round(target / per))
			if n < 1 {
				n = 1
			}
			return LoopPlan{LoopType: t, Loops: n, ShorteningMm: per * float64(n)}
		}
	}
	return LoopPlan{LoopType: 1, Loops: 1, ShorteningMm: loopShorteningMm[1]}
}
