package api

import (
	"fmt"
	"sort"

	"github.com/wingcheck/wingcheck/pkg/strength"
	"github.com/wingcheck/wingcheck/pkg/trim"
	"github.com/wingcheck/wingcheck/pkg/types"
)

// Hint is one human-readable insight about an assessment. The workshop UI
// displays these as chips; clicking one shows Detail.
type Hint struct {
	// Key is a stable machine-readable identifier (used for dedup/ordering).
	Key string `json:"key"`
	// Level is "ok" | "info" | "warning" | "critical"
	Level string `json:"level"`
	// Title is a short label shown on the chip (≤ 5 words).
	Title string `json:"title"`
	// Detail is the full explanation shown on click/hover.
	Detail string `json:"detail"`
	// Value is an optional numeric value associated with this hint.
	Value *float64 `json:"value,omitempty"`
}

var levelRank = map[string]int{"critical": 0, "warning": 1, "info": 2, "ok": 3}

// sortHints orders hints critical first, then warnings, info and ok.
func sortHints(h []Hint) []Hint {
	sort.SliceStable(h, func(i, j int) bool { return levelRank[h[i].Level] < levelRank[h[j].Level] })
	return h
}

var shapeLevel = map[trim.Shape]string{
	trim.ShapeWithinTolerance: "ok",
	trim.ShapeLocalized:       "warning",
	trim.ShapeAsymmetricLeft:  "warning",
	trim.ShapeAsymmetricRight: "warning",
	trim.ShapeUniformlyLong:   "critical",
	trim.ShapeUniformlyShort:  "critical",
	trim.ShapeNoseHeavy:       "critical",
	trim.ShapeTailHeavy:       "critical",
	trim.ShapeIrregular:       "critical",
}

var profileLevel = map[trim.Profile]string{
	trim.ProfileStable:      "ok",
	trim.ProfileReflex:      "warning",
	trim.ProfileAccelerated: "warning",
	trim.ProfileUnstable:    "critical",
}

// trimHints derives hints from a trim result.
func trimHints(res trim.Result) []Hint {
	if res.Empty() {
		return []Hint{{
			Key:    "not_measured",
			Level:  "info",
			Title:  "No measurements yet",
			Detail: "Enter measured line lengths to compare them against the manufacturer references.",
		}}
	}
	if res.Shape.Shape == trim.ShapeInsufficientData {
		return []Hint{{
			Key:    "insufficient_data",
			Level:  "info",
			Title:  "Measure both sides",
			Detail: "No cell has both the left and right side measured yet. Differentials and shape need both sides.",
		}}
	}

	var hints []Hint

	tol := res.ToleranceMm
	hints = append(hints, Hint{
		Key:    "shape",
		Level:  shapeLevel[res.Shape.Shape],
		Title:  shapeTitle(res.Shape.Shape),
		Detail: fmt.Sprintf("%s Tolerance for this wing is ±%.0f mm.", res.Shape.Description, tol),
		Value:  res.Shape.PitchMm,
	})

	if n := res.OutOfTolerance; n > 0 {
		v := float64(n)
		hints = append(hints, Hint{
			Key:    "out_of_tolerance",
			Level:  "warning",
			Title:  fmt.Sprintf("%d cells out of trim", n),
			Detail: fmt.Sprintf("%d group differentials exceed ±%.0f mm. See the suggested corrections.", n, tol),
			Value:  &v,
		})
	}

	if lvl, ok := profileLevel[res.Profile.Profile]; ok {
		hints = append(hints, Hint{
			Key:    "profile",
			Level:  lvl,
			Title:  "Pitch: " + string(res.Profile.Profile),
			Detail: res.Profile.Description + " " + res.Profile.Details,
		})
	}

	var remeasure, complexLoops int
	for _, c := range res.Corrections {
		if c.Action == trim.ActionRemeasure {
			remeasure++
		}
		if c.Loops != nil && c.Loops.LoopType >= 3 {
			complexLoops++
		}
	}
	if remeasure > 0 {
		hints = append(hints, Hint{
			Key:   "remeasure",
			Level: "warning",
			Title: fmt.Sprintf("Re-measure %d lines", remeasure),
			Detail: "Some deviations are larger than a plausible trim change. " +
				"Check the measurement setup and the line identification before adjusting.",
		})
	}
	if complexLoops > 0 {
		hints = append(hints, Hint{
			Key:    "complex_loops",
			Level:  "info",
			Title:  "Complex loop types",
			Detail: "Some corrections use loop types 3 to 5. Shortening values are approximate for soft-link connections.",
		})
	}

	return sortHints(hints)
}

func shapeTitle(s trim.Shape) string {
	switch s {
	case trim.ShapeWithinTolerance:
		return "Trim within tolerance"
	case trim.ShapeLocalized:
		return "Localized deviation"
	case trim.ShapeUniformlyLong:
		return "Lines uniformly long"
	case trim.ShapeUniformlyShort:
		return "Lines uniformly short"
	case trim.ShapeNoseHeavy:
		return "Rear rows long"
	case trim.ShapeTailHeavy:
		return "Rear rows short"
	case trim.ShapeAsymmetricLeft:
		return "Left side long"
	case trim.ShapeAsymmetricRight:
		return "Right side long"
	default:
		return "Irregular deviations"
	}
}

// evaluateHints derives hints from a destructive test evaluation.
func evaluateHints(ev strength.Evaluation, material types.Material) []Hint {
	pct := ev.PercentRemaining
	var hints []Hint
	switch ev.Result {
	case strength.ResultReject:
		hints = append(hints, Hint{Key: "strength", Level: "critical", Title: "Replace line", Detail: ev.Detail, Value: &pct})
	case strength.ResultWarning:
		hints = append(hints, Hint{Key: "strength", Level: "warning", Title: "Recheck soon", Detail: ev.Detail, Value: &pct})
	default:
		hints = append(hints, Hint{Key: "strength", Level: "ok", Title: "Strength OK", Detail: ev.Detail, Value: &pct})
	}
	if material == types.MaterialUnknown {
		hints = append(hints, Hint{
			Key:    "material_unknown",
			Level:  "info",
			Title:  "Material not recognised",
			Detail: strength.Guidance(material),
		})
	}
	return sortHints(hints)
}
