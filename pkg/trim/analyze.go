package trim

import (
	"fmt"

	"github.com/wingcheck/wingcheck/pkg/types"
)

// Options tune the analysis. The zero value uses the defaults.
type Options struct {
	// MaxAdjustmentMm caps suggested adjustments; larger deviations get
	// ActionRemeasure. Zero or negative means DefaultMaxAdjustmentMm.
	MaxAdjustmentMm float64 `json:"max_adjustment_mm,omitempty" yaml:"max_adjustment_mm"`
}

func (o Options) maxAdjustment() float64 {
	if o.MaxAdjustmentMm <= 0 {
		return DefaultMaxAdjustmentMm
	}
	return o.MaxAdjustmentMm
}

// Input is everything Analyze needs about one wing and one measuring session.
type Input struct {
	RowCount     int                     `json:"row_count" yaml:"row_count"`
	AspectRatio  float64                 `json:"aspect_ratio" yaml:"aspect_ratio"`
	Plan         GroupMapping            `json:"line_plan" yaml:"line_plan"`
	References   []types.ReferenceLength `json:"references" yaml:"references"`
	Measurements []types.MeasuredLine    `json:"measurements" yaml:"measurements"`
	Method       types.Method            `json:"method" yaml:"method"`
	Offsets      types.Offsets           `json:"offsets" yaml:"offsets"`
}

// Result is the complete trim assessment.
type Result struct {
	ToleranceMm    float64         `json:"tolerance_mm"`
	Cells          []CellDeviation `json:"cells"`
	Rows           []RowSummary    `json:"rows"`
	Groups         []GroupSummary  `json:"groups"`
	Shape          ShapeAnalysis   `json:"shape"`
	Profile        ProfileAnalysis `json:"profile"`
	Corrections    []Correction    `json:"corrections"`
	OutOfTolerance int             `json:"out_of_tolerance"`
}

// Empty reports whether the result carries no cells, the "not measured yet"
// state.
func (r Result) Empty() bool { return len(r.Cells) == 0 }

// WithinTolerance reports whether every complete cell is within tolerance and
// at least one cell was compared.
func (r Result) WithinTolerance() bool {
	return !r.Empty() && len(r.Rows) > 0 && r.OutOfTolerance == 0
}

// Analyze runs the full trim pipeline. No measurements yields an empty Result
// and a nil error. Measurements against a row count outside 1..MaxRows, or
// naming cells the plan does not have, are a *types.ValidationError.
func Analyze(in Input, opts Options) (Result, error) {
	tol := ToleranceForAspectRatio(in.AspectRatio)
	if len(in.Measurements) == 0 {
		return Result{ToleranceMm: tol}, nil
	}
	if types.Rows(in.RowCount) == nil {
		return Result{}, types.Invalid("row_count", in.RowCount, fmt.Sprintf("must be between 1 and %d", types.MaxRows))
	}
	cells := ExtractCells(in.RowCount, in.Plan)

	devs, err := CalculateDeviations(cells, in.References, in.Measurements, in.Method, in.Offsets, tol)
	if err != nil {
		return Result{}, err
	}

	rows := SummarizeRows(devs, tol)
	groups := SummarizeGroups(devs, tol)
	corrections := SuggestCorrections(devs, tol, opts)
	for i := range corrections {
		corrections[i].Positions = GroupPositions(in.Plan, corrections[i].Cell)
	}

	res := Result{
		ToleranceMm: tol,
		Cells:       devs,
		Rows:        rows,
		Groups:      groups,
		Shape:       DetectShape(rows, groups, devs, tol),
		Profile:     DetectProfile(devs),
		Corrections: corrections,
	}
	for _, c := range devs {
		if c.OutOfTolerance {
			res.OutOfTolerance++
		}
	}
	return res, nil
}
