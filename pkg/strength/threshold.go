package strength

import (
	"fmt"

	"github.com/wingcheck/wingcheck/internal/numeric"
	"github.com/wingcheck/wingcheck/pkg/types"
)

// Remaining-strength limits as a percentage of the as-new strength.
const (
	WarningPct = 20.0
	RejectPct  = 10.0
)

// Threshold holds the destructive-test limits for one line specification.
type Threshold struct {
	Row          types.Row `json:"row"`
	CascadeLevel int       `json:"cascade_level"`
	StrengthNew  float64   `json:"strength_new"`
	// WarningDaN is the measured strength below which the line is rechecked.
	WarningDaN float64 `json:"warning_dan"`
	// RejectDaN is the measured strength below which the line is replaced.
	RejectDaN float64 `json:"reject_dan"`
}

// Thresholds computes limits for every record with a known as-new strength,
// in input order. Records with a nil strength are skipped.
func Thresholds(records []types.StrengthRecord) ([]Threshold, error) {
	out := make([]Threshold, 0, len(records))
	for i, r := range records {
		if r.StrengthNew == nil {
			continue
		}
		s := *r.StrengthNew
		if !numeric.Finite(s) || s < 0 {
			return nil, types.Invalid(fmt.Sprintf("records[%d] strength_new", i), s, "must be a finite non-negative number")
		}
		out = append(out, Threshold{
			Row:          r.Row,
			CascadeLevel: r.CascadeLevel,
			StrengthNew:  s,
			WarningDaN:   numeric.Share(WarningPct, s),
			RejectDaN:    numeric.Share(RejectPct, s),
		})
	}
	return out, nil
}
