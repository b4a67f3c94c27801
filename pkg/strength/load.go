package strength

import (
	"github.com/wingcheck/wingcheck/internal/numeric"
	"github.com/wingcheck/wingcheck/pkg/types"
)

// rowShare is one row's share of the total load, in percent.
type rowShare struct {
	Row types.Row
	Pct float64
}

// loadTables are the APPI load distribution percentages keyed by row count.
// Each table sums to 100. Stabilizer lines carry no share.
var loadTables = map[int][]rowShare{
	2: {{types.RowA, 65}, {types.RowB, 35}},
	3: {{types.RowA, 50}, {types.RowB, 40}, {types.RowC, 10}},
	4: {{types.RowA, 40}, {types.RowB, 35}, {types.RowC, 20}, {types.RowD, 5}},
}

// RowLoad is one row's share of the maximum flying weight.
type RowLoad struct {
	Row        types.Row `json:"row"`
	Percentage float64   `json:"percentage"`
	LoadKg     float64   `json:"load_kg"`
}

// SupportedRowCount reports whether a load table exists for rowCount.
func SupportedRowCount(rowCount int) bool {
	_, ok := loadTables[rowCount]
	return ok
}

// LoadDistribution splits totalLoadKg across the rows of a wing. LoadKg is
// rounded to 0.01 kg. An unsupported row count yields an empty slice and a nil
// error.
func LoadDistribution(rowCount int, totalLoadKg float64) ([]RowLoad, error) {
	if !numeric.Finite(totalLoadKg) || totalLoadKg < 0 {
		return nil, types.Invalid("total_load_kg", totalLoadKg, "must be a finite non-negative number")
	}
	table, ok := loadTables[rowCount]
	if !ok {
		return []RowLoad{}, nil
	}
	out := make([]RowLoad, 0, len(table))
	for _, s := range table {
		out = append(out, RowLoad{
			Row:        s.Row,
			Percentage: s.Pct,
			LoadKg:     numeric.Round(numeric.Share(s.Pct, totalLoadKg), 2),
		})
	}
	return out, nil
}

// sharePct returns the row's load share in percent. Rows missing from a
// supported table share the load evenly.
func sharePct(rowCount int, row types.Row) (float64, bool) {
	table, ok := loadTables[rowCount]
	if !ok {
		return 0, false
	}
	for _, s := range table {
		if s.Row == row {
			return s.Pct, true
		}
	}
	return 100 / float64(rowCount), true
}
