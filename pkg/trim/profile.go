package trim

import (
	"fmt"

	"github.com/wingcheck/wingcheck/internal/numeric"
	"github.com/wingcheck/wingcheck/pkg/types"
)

// Profile is the pitch behaviour implied by the row-to-row trim.
type Profile string

const (
	ProfileStable      Profile = "stable"
	ProfileReflex      Profile = "reflex"
	ProfileAccelerated Profile = "accelerated"
	ProfileUnstable    Profile = "unstable"
	ProfileUnknown     Profile = "unknown"
)

// SignificantDeviationMm is the row-to-row differential deviation below which
// a change of trim is not considered to affect pitch behaviour.
const SignificantDeviationMm = 5.0

// ProfileAnalysis is the pitch profile with the median differentials it was
// derived from.
type ProfileAnalysis struct {
	Profile     Profile  `json:"profile"`
	Description string   `json:"description"`
	Details     string   `json:"details"`
	ABMm        *float64 `json:"ab_mm,omitempty"`
	ACMm        *float64 `json:"ac_mm,omitempty"`
}

var profileDescriptions = map[Profile]string{
	ProfileStable:      "Trim within tolerance. Normal flight characteristics expected.",
	ProfileReflex:      "Rear rows shortened relative to A. Increased pitch stability, possibly reduced speed.",
	ProfileAccelerated: "Rear rows elongated relative to A. Increased speed, reduced pitch stability, collapse risk.",
	ProfileUnstable:    "B elongated while C shortened. Unpredictable pitch behaviour; inspect before flight.",
	ProfileUnknown:     "Insufficient data to determine the pitch profile.",
}

// DetectProfile derives the pitch profile from the A–B and A–C differential
// deviations, dev(A) − dev(B) and dev(A) − dev(C), taken as the median across
// the main groups. The stabilizer does not contribute.
func DetectProfile(cells []CellDeviation) ProfileAnalysis {
	byCell := make(map[types.Cell]CellDeviation, len(cells))
	for _, c := range cells {
		if c.Complete {
			byCell[c.Cell] = c
		}
	}

	var ab, ac []float64
	for _, g := range types.Groups() {
		if g.Stabilizer() {
			continue
		}
		a, ok := byCell[types.Cell{Row: types.RowA, Group: g}]
		if !ok {
			continue
		}
		if b, ok := byCell[types.Cell{Row: types.RowB, Group: g}]; ok {
			ab = append(ab, a.DifferentialMm-b.DifferentialMm)
		}
		if c, ok := byCell[types.Cell{Row: types.RowC, Group: g}]; ok {
			ac = append(ac, a.DifferentialMm-c.DifferentialMm)
		}
	}

	abMed, hasAB := numeric.Median(ab)
	acMed, hasAC := numeric.Median(ac)
	if !hasAB && !hasAC {
		return ProfileAnalysis{
			Profile:     ProfileUnknown,
			Description: profileDescriptions[ProfileUnknown],
			Details:     "Need A-row plus B- or C-row measurements on both sides.",
		}
	}

	p := classifyProfile(abMed, hasAB, acMed, hasAC)
	out := ProfileAnalysis{
		Profile:     p,
		Description: profileDescriptions[p],
		Details:     fmt.Sprintf("A-B deviation: %s, A-C deviation: %s.", signedMm(abMed, hasAB), signedMm(acMed, hasAC)),
	}
	if hasAB {
		out.ABMm = &abMed
	}
	if hasAC {
		out.ACMm = &acMed
	}
	return out
}

func classifyProfile(ab float64, hasAB bool, ac float64, hasAC bool) Profile {
	sig := SignificantDeviationMm
	abShort := hasAB && ab < -sig
	abLong := hasAB && ab > sig
	acShort := hasAC && ac < -sig
	acLong := hasAC && ac > sig

	switch {
	case !abShort && !abLong && !acShort && !acLong:
		return ProfileStable
	case abShort && acLong:
		return ProfileUnstable
	case abShort || acShort:
		return ProfileAccelerated
	default:
		return ProfileReflex
	}
}

func signedMm(v float64, ok bool) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%+.1fmm", v)
}
