package cloth

import "github.com/wingcheck/wingcheck/internal/numeric"

// Point is one cloth test location. Nil readings were not taken.
type Point struct {
	Location       string   `json:"location" yaml:"location"`
	PorosityValue  *float64 `json:"porosity_value,omitempty" yaml:"porosity_value"`
	PorosityMethod Method   `json:"porosity_method,omitempty" yaml:"porosity_method"`
	TearResistance *float64 `json:"tear_resistance,omitempty" yaml:"tear_resistance"`
	// Result is a technician-recorded result; it overrides the computed one
	// in summaries.
	Result Result `json:"result,omitempty" yaml:"result"`
}

// AutoResult returns the worst result across the point's readings and false
// when the point has none. A porosity reading without a method is ignored.
func AutoResult(p Point) (Result, bool) {
	var worst Result
	if p.PorosityValue != nil && p.PorosityMethod != "" {
		worst = Worst(worst, EvaluatePorosity(*p.PorosityValue, p.PorosityMethod).Result)
	}
	if p.TearResistance != nil {
		worst = Worst(worst, EvaluateTearResistance(*p.TearResistance).Result)
	}
	return worst, worst.Valid()
}

// Summary aggregates the cloth points of a session.
type Summary struct {
	TotalTests   int      `json:"total_tests"`
	PassCount    int      `json:"pass_count"`
	WarningCount int      `json:"warning_count"`
	FailCount    int      `json:"fail_count"`
	Overall      Result   `json:"overall_result"`
	PorosityAvg  *float64 `json:"porosity_avg"`
	TearAvg      *float64 `json:"tear_avg"`
}

// Summarize counts results per point, preferring a recorded result over the
// computed one, and averages the readings that were taken. Points with no
// result count toward TotalTests only.
func Summarize(points []Point) Summary {
	s := Summary{TotalTests: len(points), Overall: ResultPass}
	var porosity, tear []float64
	for _, p := range points {
		r := p.Result
		if !r.Valid() {
			r, _ = AutoResult(p)
		}
		switch r {
		case ResultPass:
			s.PassCount++
		case ResultWarning:
			s.WarningCount++
		case ResultFail:
			s.FailCount++
		}
		s.Overall = Worst(s.Overall, r)

		if p.PorosityValue != nil {
			porosity = append(porosity, *p.PorosityValue)
		}
		if p.TearResistance != nil {
			tear = append(tear, *p.TearResistance)
		}
	}
	if avg, ok := numeric.Mean(porosity); ok {
		s.PorosityAvg = &avg
	}
	if avg, ok := numeric.Mean(tear); ok {
		s.TearAvg = &avg
	}
	return s
}
