// Package numeric holds the small float helpers shared by the assessment
// engines: rounding to reporting precision, percentage math and simple
// aggregates. Everything here is a pure function.
package numeric

import (
	"math"
	"sort"
)

// Round rounds v to the given number of decimal places, half away from zero.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// RoundHalf rounds v to the nearest 0.5, half away from zero.
// RoundHalf(-x) == -RoundHalf(x) for every finite x.
func RoundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

// Percent returns part as a percentage of whole. The multiplication happens
// before the division so exact boundaries (19 of 190) land on exact values.
// Returns 0 when whole is 0.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part * 100 / whole
}

// Share returns pct percent of total.
func Share(pct, total float64) float64 {
	return pct * total / 100
}

// Mean returns the arithmetic mean of values and false when values is empty.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// Median returns the median of values and false when values is empty.
// values is not modified.
func Median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2, true
	}
	return sorted[mid], true
}

// MaxAbs returns the largest absolute value in values, 0 when empty.
func MaxAbs(values []float64) float64 {
	var m float64
	for _, v := range values {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

// Finite reports whether v is neither NaN nor ±Inf.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// AlmostEqual reports whether a and b differ by less than epsilon.
func AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}
