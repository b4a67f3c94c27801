package strength

import (
	"strings"

	"github.com/wingcheck/wingcheck/pkg/types"
)

// materialRules are checked in order; the first rule with a matching keyword
// wins.
var materialRules = []struct {
	Material types.Material
	Keywords []string
}{
	{types.MaterialVectran, []string{"vectran"}},
	{types.MaterialDyneema, []string{"dyneema", "sk99", "sk78", "sk75"}},
	{types.MaterialAramid, []string{"aramid", "kevlar", "technora"}},
}

var guidance = map[types.Material]string{
	types.MaterialVectran: "Recheck every 50h or 100 flights.",
	types.MaterialDyneema: "Generally not tested unless suspicious. Very resistant to UV degradation.",
	types.MaterialAramid:  "Full-length test recommended. Tracked per line type. Sensitive to UV.",
	types.MaterialUnknown: "Unknown material. Test as per manufacturer recommendations.",
}

// Classify infers the line material from the manufacturer name and the line
// specification text, case-insensitively. Manufacturer names alone never
// imply a material.
func Classify(manufacturer, spec string) types.Material {
	text := strings.ToLower(manufacturer + " " + spec)
	for _, rule := range materialRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Material
			}
		}
	}
	return types.MaterialUnknown
}

// Guidance returns the testing guidance for a material. Unrecognised values
// get the unknown-material guidance.
func Guidance(m types.Material) string {
	if g, ok := guidance[m]; ok {
		return g
	}
	return guidance[types.MaterialUnknown]
}
