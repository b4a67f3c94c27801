package cloth

import (
	"fmt"
	"strconv"
)

// Result is the outcome of a cloth test. Results order pass < warning < fail.
type Result string

const (
	ResultPass    Result = "pass"
	ResultWarning Result = "warning"
	ResultFail    Result = "fail"
)

func (r Result) severity() int {
	switch r {
	case ResultPass:
		return 1
	case ResultWarning:
		return 2
	case ResultFail:
		return 3
	}
	return 0
}

// Valid reports whether r is a known result.
func (r Result) Valid() bool { return r.severity() > 0 }

// Worst returns the more severe of a and b.
func Worst(a, b Result) Result {
	if b.severity() > a.severity() {
		return b
	}
	return a
}

// Method is a porosity measuring instrument.
type Method string

const (
	// MethodJDC reports seconds for a fixed air volume to pass; higher is
	// better.
	MethodJDC Method = "jdc"
	// The remaining instruments report L/m²/min; lower is better.
	MethodPorosimeter Method = "porosimeter"
	MethodBettsometer Method = "bettsometer"
	MethodPorotest    Method = "porotest"
)

// Porosity thresholds.
const (
	JDCPassAboveSec    = 15.0
	JDCFailBelowSec    = 10.0
	FlowPassBelowL     = 360.0
	FlowWarnUpToL      = 540.0
	TearPassAboveGrams = 800.0
	TearFailBelowGrams = 600.0
)

// Evaluation is one judged measurement.
type Evaluation struct {
	Result Result `json:"result"`
	Label  string `json:"label"`
	Detail string `json:"detail"`
}

// EvaluatePorosity judges a porosity reading. JDC readings are in seconds;
// every other method is read as L/m²/min.
func EvaluatePorosity(value float64, method Method) Evaluation {
	v := num(value)
	if method == MethodJDC {
		switch {
		case value > JDCPassAboveSec:
			return Evaluation{ResultPass, "Pass", fmt.Sprintf("%ss > 15s threshold", v)}
		case value >= JDCFailBelowSec:
			return Evaluation{ResultWarning, "Warning", fmt.Sprintf("%ss in 10-15s warning range, fabric stiffness may be degrading", v)}
		default:
			return Evaluation{ResultFail, "Investigation", fmt.Sprintf("%ss < 10s, high permeability, airworthiness investigation required", v)}
		}
	}
	switch {
	case value < FlowPassBelowL:
		return Evaluation{ResultPass, "Pass", fmt.Sprintf("%s L/m²/min < 360 threshold", v)}
	case value <= FlowWarnUpToL:
		return Evaluation{ResultWarning, "Warning", fmt.Sprintf("%s L/m²/min in 360-540 warning range, fabric stiffness may be degrading", v)}
	default:
		return Evaluation{ResultFail, "Investigation", fmt.Sprintf("%s L/m²/min > 540, high permeability, airworthiness investigation required", v)}
	}
}

// EvaluateTearResistance judges a Bettsometer tear-resistance reading in grams.
func EvaluateTearResistance(grams float64) Evaluation {
	v := num(grams)
	switch {
	case grams > TearPassAboveGrams:
		return Evaluation{ResultPass, "Good", fmt.Sprintf("%sg > 800g, cloth in good condition", v)}
	case grams >= TearFailBelowGrams:
		return Evaluation{ResultWarning, "Used", fmt.Sprintf("%sg in 600-800g range, cloth showing wear", v)}
	default:
		return Evaluation{ResultFail, "Not Airworthy", fmt.Sprintf("%sg < 600g, structural integrity compromised", v)}
	}
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
