package trim

import (
	"fmt"
	"math"
	"sort"

	"github.com/wingcheck/wingcheck/internal/numeric"
	"github.com/wingcheck/wingcheck/pkg/types"
)

// SideDeviation is the comparison of one side of a cell to its reference.
type SideDeviation struct {
	// Present is true when the side has both a reference and at least one
	// measurement. The numeric fields are zero otherwise and carry no meaning.
	Present bool `json:"present"`

	// MeasuredMm is the effective measured length: the mean across cascade
	// levels, after the glider offset under the differential method.
	MeasuredMm  float64 `json:"measured_mm"`
	ReferenceMm float64 `json:"reference_mm"`

	// DeviationMm is MeasuredMm − ReferenceMm. Positive = line long.
	DeviationMm float64 `json:"deviation_mm"`

	// Samples is the number of distinct cascade levels measured.
	Samples int `json:"samples"`
}

// CellDeviation is the two-sided deviation of one (row, group) cell.
type CellDeviation struct {
	types.Cell

	Left  SideDeviation `json:"left"`
	Right SideDeviation `json:"right"`

	// Complete is true when both sides are present. Differential and
	// Asymmetry are only computed for complete cells.
	Complete bool `json:"complete"`

	// DifferentialMm is the mean of the side deviations.
	DifferentialMm float64 `json:"differential_mm"`

	// AsymmetryMm is left minus right. Positive = left long.
	AsymmetryMm float64 `json:"asymmetry_mm"`

	// OutOfTolerance is true when |DifferentialMm| exceeds the tolerance.
	OutOfTolerance bool `json:"out_of_tolerance"`
}

// Side returns the deviation for s.
func (c CellDeviation) Side(s types.Side) SideDeviation {
	if s == types.SideRight {
		return c.Right
	}
	return c.Left
}

type sideKey struct {
	cell types.Cell
	side types.Side
}

type lineKey struct {
	sideKey
	cascade int
}

// CalculateDeviations compares measurements to references for every cell of
// the plan, in plan order. Duplicate measurements of the same (cell, side,
// cascade level) are resolved last-wins; distinct cascade levels of one side
// are averaged. It returns a *types.ValidationError when an input names a cell
// outside cells, an unknown side, or carries a value it cannot compute on.
func CalculateDeviations(
	cells []types.Cell,
	refs []types.ReferenceLength,
	lines []types.MeasuredLine,
	method types.Method,
	offsets types.Offsets,
	tolerance float64,
) ([]CellDeviation, error) {
	if !method.Valid() {
		return nil, types.Invalid("method", method, "must be absolute or differential")
	}
	if !numeric.Finite(offsets.Glider) {
		return nil, types.Invalid("offsets.glider", offsets.Glider, "must be finite")
	}

	inPlan := make(map[types.Cell]bool, len(cells))
	for _, c := range cells {
		inPlan[c] = true
	}

	references := make(map[sideKey]float64, len(refs))
	for i, r := range refs {
		cell := types.Cell{Row: r.Row, Group: r.Group}
		field := fmt.Sprintf("references[%d] %s %s", i, cell, r.Side)
		switch {
		case !inPlan[cell]:
			return nil, types.Invalid(field, cell.String(), "cell is not part of the line plan")
		case !r.Side.Valid():
			return nil, types.Invalid(field, r.Side, "side must be left or right")
		case !numeric.Finite(r.LengthMm) || r.LengthMm < 0:
			return nil, types.Invalid(field, r.LengthMm, "reference length must be a finite non-negative number")
		}
		references[sideKey{cell, r.Side}] = r.LengthMm
	}

	differential := method == types.MethodDifferential
	values := make(map[lineKey]float64, len(lines))
	for i, m := range lines {
		cell := m.Cell()
		field := fmt.Sprintf("measurements[%d] %s %s", i, cell, m.Side)
		switch {
		case !inPlan[cell]:
			return nil, types.Invalid(field, cell.String(), "cell is not part of the line plan")
		case !m.Side.Valid():
			return nil, types.Invalid(field, m.Side, "side must be left or right")
		case !numeric.Finite(m.Value):
			return nil, types.Invalid(field, m.Value, "measurement must be finite")
		case !differential && m.Value < 0:
			return nil, types.Invalid(field, m.Value, "absolute length must not be negative")
		}
		values[lineKey{sideKey{cell, m.Side}, m.CascadeLevel}] = m.Value
	}

	// Collect cascade levels per side so averaging runs in a fixed order.
	cascades := make(map[sideKey][]int)
	for k := range values {
		cascades[k.sideKey] = append(cascades[k.sideKey], k.cascade)
	}

	out := make([]CellDeviation, 0, len(cells))
	for _, cell := range cells {
		cd := CellDeviation{Cell: cell}
		for _, side := range []types.Side{types.SideLeft, types.SideRight} {
			key := sideKey{cell, side}
			ref, ok := references[key]
			levels := cascades[key]
			if !ok || len(levels) == 0 {
				continue
			}
			sort.Ints(levels)
			measured := make([]float64, 0, len(levels))
			for _, lvl := range levels {
				v := values[lineKey{key, lvl}]
				if differential {
					v += offsets.Glider
				}
				measured = append(measured, v)
			}
			mean, _ := numeric.Mean(measured)
			sd := SideDeviation{
				Present:     true,
				MeasuredMm:  mean,
				ReferenceMm: ref,
				DeviationMm: mean - ref,
				Samples:     len(levels),
			}
			if side == types.SideLeft {
				cd.Left = sd
			} else {
				cd.Right = sd
			}
		}
		if cd.Left.Present && cd.Right.Present {
			cd.Complete = true
			cd.DifferentialMm = (cd.Left.DeviationMm + cd.Right.DeviationMm) / 2
			cd.AsymmetryMm = cd.Left.DeviationMm - cd.Right.DeviationMm
			cd.OutOfTolerance = math.Abs(cd.DifferentialMm) > tolerance
		}
		out = append(out, cd)
	}
	return out, nil
}
