package trim

import "math"

// toleranceBand caps one aspect-ratio band. Ratios up to and including
// MaxRatio get ToleranceMm.
type toleranceBand struct {
	MaxRatio    float64
	ToleranceMm float64
}

// toleranceBands are the APPI trim tolerances by flat aspect ratio, ordered by
// MaxRatio. Tolerances must not increase down the table.
var toleranceBands = []toleranceBand{
	{MaxRatio: 5.0, ToleranceMm: 20},
	{MaxRatio: 6.0, ToleranceMm: 15},
	{MaxRatio: math.Inf(1), ToleranceMm: 10},
}

// ToleranceForAspectRatio returns the trim tolerance in mm for a wing's flat
// aspect ratio. Higher-aspect wings get tighter tolerance. An unknown ratio
// (zero, negative or NaN) gets the loosest band.
func ToleranceForAspectRatio(ratio float64) float64 {
	if math.IsNaN(ratio) || ratio <= 0 {
		return toleranceBands[0].ToleranceMm
	}
	for _, b := range toleranceBands {
		if ratio <= b.MaxRatio {
			return b.ToleranceMm
		}
	}
	return toleranceBands[len(toleranceBands)-1].ToleranceMm
}
