package strength

import (
	"fmt"

	"github.com/wingcheck/wingcheck/internal/numeric"
	"github.com/wingcheck/wingcheck/pkg/types"
)

// Result is the outcome of a destructive test.
type Result string

const (
	ResultPass    Result = "pass"
	ResultWarning Result = "warning"
	ResultReject  Result = "reject"
)

// Evaluation is a judged destructive test.
type Evaluation struct {
	Result           Result  `json:"result"`
	PercentRemaining float64 `json:"percent_remaining"`
	Detail           string  `json:"detail"`
}

// Evaluate judges a measured breaking strength against the as-new strength.
// Exactly RejectPct remaining is a warning and exactly WarningPct is a pass.
func Evaluate(measured, original float64) (Evaluation, error) {
	if !numeric.Finite(measured) || measured < 0 {
		return Evaluation{}, types.Invalid("measured", measured, "must be a finite non-negative number")
	}
	if !numeric.Finite(original) || original <= 0 {
		return Evaluation{}, types.Invalid("original", original, "must be a finite positive number")
	}

	pct := numeric.Percent(measured, original)
	shown := numeric.Round(pct, 0)
	switch {
	case pct < RejectPct:
		return Evaluation{ResultReject, pct, fmt.Sprintf("%.0f%% remaining, below %.0f%% reject threshold", shown, RejectPct)}, nil
	case pct < WarningPct:
		return Evaluation{ResultWarning, pct, fmt.Sprintf("%.0f%% remaining, recheck in 50h or 100 flights", shown)}, nil
	default:
		return Evaluation{ResultPass, pct, fmt.Sprintf("%.0f%% remaining, above %.0f%% threshold", shown, WarningPct)}, nil
	}
}
