package strength

import (
	"fmt"
	"strconv"

	"github.com/wingcheck/wingcheck/internal/numeric"
	"github.com/wingcheck/wingcheck/pkg/types"
)

// LoadFactorG is the load factor applied to the flying weight in the
// non-destructive test.
const LoadFactorG = 8.0

// LoadTestInput describes one line for the non-destructive load test.
type LoadTestInput struct {
	Row         types.Row  `json:"row"`
	Side        types.Side `json:"side"`
	RowCount    int        `json:"row_count"`
	MaxWeightKg float64    `json:"max_weight_kg"`
	StrengthNew float64    `json:"strength_new"`
	LinesInRow  int        `json:"lines_in_row"`
}

// LoadTestResult is the test load for one line with its breakdown.
type LoadTestResult struct {
	// Supported is false when no load table exists for the row count; the
	// load is zero then.
	Supported bool `json:"supported"`
	// LoadDaN is rounded to 0.1 daN.
	LoadDaN      float64 `json:"load_dan"`
	PerLine8GDaN float64 `json:"per_line_8g_dan"`
	MarginDaN    float64 `json:"margin_dan"`
	Breakdown    string  `json:"breakdown"`
}

// LoadTest computes the non-destructive test load: the line's share of the
// 8G flying load plus WarningPct of its as-new strength. A known row that the
// load table lacks gets an even 1/rowCount share.
func LoadTest(in LoadTestInput) (LoadTestResult, error) {
	switch {
	case in.Row.Index() < 0:
		return LoadTestResult{}, types.Invalid("row", in.Row, "must be one of A, B, C, D")
	case !in.Side.Valid():
		return LoadTestResult{}, types.Invalid("side", in.Side, "must be left or right")
	case !numeric.Finite(in.MaxWeightKg) || in.MaxWeightKg < 0:
		return LoadTestResult{}, types.Invalid("max_weight_kg", in.MaxWeightKg, "must be a finite non-negative number")
	case !numeric.Finite(in.StrengthNew) || in.StrengthNew < 0:
		return LoadTestResult{}, types.Invalid("strength_new", in.StrengthNew, "must be a finite non-negative number")
	case in.LinesInRow <= 0:
		return LoadTestResult{}, types.Invalid("lines_in_row", in.LinesInRow, "must be positive")
	}

	pct, ok := sharePct(in.RowCount, in.Row)
	if !ok {
		return LoadTestResult{Breakdown: "No load table"}, nil
	}

	perLine := numeric.Share(pct, in.MaxWeightKg*LoadFactorG) / float64(in.LinesInRow)
	margin := numeric.Share(WarningPct, in.StrengthNew)
	total := perLine + margin

	return LoadTestResult{
		Supported:    true,
		LoadDaN:      numeric.Round(total, 1),
		PerLine8GDaN: perLine,
		MarginDaN:    margin,
		Breakdown: fmt.Sprintf("%s %s: test at %.0f daN (8G × %.1f daN per-line + %.0f%% of %s daN)",
			in.Row, in.Side, numeric.Round(total, 0), numeric.Round(perLine, 1), WarningPct,
			strconv.FormatFloat(in.StrengthNew, 'f', -1, 64)),
	}, nil
}
