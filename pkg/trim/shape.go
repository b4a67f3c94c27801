package trim

import (
	"fmt"
	"math"

	"github.com/wingcheck/wingcheck/internal/numeric"
	"github.com/wingcheck/wingcheck/pkg/types"
)

// Shape is the overall deviation pattern of a wing.
type Shape string

const (
	ShapeInsufficientData Shape = "insufficient_data"
	ShapeWithinTolerance  Shape = "within_tolerance"
	ShapeLocalized        Shape = "localized"
	ShapeUniformlyLong    Shape = "uniformly_long"
	ShapeUniformlyShort   Shape = "uniformly_short"
	ShapeNoseHeavy        Shape = "nose_heavy"
	ShapeTailHeavy        Shape = "tail_heavy"
	ShapeAsymmetricLeft   Shape = "asymmetric_left"
	ShapeAsymmetricRight  Shape = "asymmetric_right"
	ShapeIrregular        Shape = "irregular"
)

// ShapeAnalysis is the detected shape with a human-readable description.
type ShapeAnalysis struct {
	Shape       Shape  `json:"shape"`
	Description string `json:"description"`
	// Row is set for ShapeLocalized.
	Row types.Row `json:"row,omitempty"`
	// PitchMm is the rear-rows mean minus the A-row mean, when both exist.
	PitchMm *float64 `json:"pitch_mm,omitempty"`
}

// DetectShape classifies the deviation pattern. Rules are evaluated most
// specific first; the first match wins.
func DetectShape(rows []RowSummary, groups []GroupSummary, cells []CellDeviation, tolerance float64) ShapeAnalysis {
	if len(rows) == 0 {
		return ShapeAnalysis{
			Shape:       ShapeInsufficientData,
			Description: "No cell has both sides measured.",
		}
	}

	var exceedingRows []RowSummary
	for _, r := range rows {
		if r.Exceeding > 0 {
			exceedingRows = append(exceedingRows, r)
		}
	}

	pitch, hasPitch := pitchOf(rows)
	result := func(s Shape, desc string) ShapeAnalysis {
		a := ShapeAnalysis{Shape: s, Description: desc}
		if hasPitch {
			p := pitch
			a.PitchMm = &p
		}
		return a
	}

	if len(exceedingRows) == 1 {
		a := result(ShapeLocalized, fmt.Sprintf("Only row %s is out of tolerance.", exceedingRows[0].Row))
		a.Row = exceedingRows[0].Row
		return a
	}

	if len(exceedingRows) == len(rows) {
		long, short := true, true
		for _, r := range rows {
			long = long && r.MeanDeviationMm > tolerance
			short = short && r.MeanDeviationMm < -tolerance
		}
		switch {
		case long:
			return result(ShapeUniformlyLong, "Every row is long beyond tolerance; lines have stretched evenly.")
		case short:
			return result(ShapeUniformlyShort, "Every row is short beyond tolerance; lines have shrunk evenly.")
		}
	}

	if len(exceedingRows) >= 2 && hasPitch && math.Abs(pitch) > tolerance {
		if pitch > 0 {
			return result(ShapeNoseHeavy, fmt.Sprintf("Rear rows are %.1f mm long relative to the A row.", pitch))
		}
		return result(ShapeTailHeavy, fmt.Sprintf("Rear rows are %.1f mm short relative to the A row.", -pitch))
	}

	for _, g := range groups {
		if g.Exceeding > 0 {
			return result(ShapeIrregular, "Deviations exceed tolerance without a systematic pattern.")
		}
	}

	var asym []float64
	asymGroups := map[types.Group]bool{}
	for _, c := range cells {
		if c.Complete && math.Abs(c.AsymmetryMm) > tolerance {
			asym = append(asym, c.AsymmetryMm)
			asymGroups[c.Group] = true
		}
	}
	if len(asymGroups) >= 2 {
		mean, _ := numeric.Mean(asym)
		if mean > 0 {
			return result(ShapeAsymmetricLeft, "The left side is consistently longer than the right.")
		}
		return result(ShapeAsymmetricRight, "The right side is consistently longer than the left.")
	}

	return result(ShapeWithinTolerance, "All measured cells are within tolerance.")
}

// pitchOf returns the mean of the rear rows minus the A-row mean.
func pitchOf(rows []RowSummary) (float64, bool) {
	var front *RowSummary
	var rear []float64
	for i := range rows {
		if rows[i].Row == types.RowA {
			front = &rows[i]
			continue
		}
		rear = append(rear, rows[i].MeanDeviationMm)
	}
	if front == nil {
		return 0, false
	}
	mean, ok := numeric.Mean(rear)
	if !ok {
		return 0, false
	}
	return mean - front.MeanDeviationMm, true
}
