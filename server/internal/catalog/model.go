package catalog

import (
	"fmt"

	"github.com/wingcheck/wingcheck/pkg/trim"
	"github.com/wingcheck/wingcheck/pkg/types"
)

// LineMaterial is the manufacturer line specification for one row and
// cascade level.
type LineMaterial struct {
	Row          types.Row `yaml:"row" json:"row"`
	CascadeLevel int       `yaml:"cascade_level" json:"cascade_level"`
	Manufacturer string    `yaml:"manufacturer" json:"manufacturer"`
	Spec         string    `yaml:"spec" json:"spec"`
	// StrengthNew is the as-new breaking strength in daN; nil when the
	// manufacturer does not publish it.
	StrengthNew *float64 `yaml:"strength_new" json:"strength_new"`
	// LinesInRow is the number of lines of this specification per side.
	LinesInRow int `yaml:"lines_in_row" json:"lines_in_row,omitempty"`
}

// Model is the reference data for one glider size.
type Model struct {
	ID           string                  `yaml:"id" json:"id"`
	Manufacturer string                  `yaml:"manufacturer" json:"manufacturer"`
	Name         string                  `yaml:"model" json:"model"`
	Size         string                  `yaml:"size" json:"size"`
	RowCount     int                     `yaml:"row_count" json:"row_count"`
	AspectRatio  float64                 `yaml:"aspect_ratio" json:"aspect_ratio"`
	MaxWeightKg  float64                 `yaml:"max_weight_kg" json:"max_weight_kg"`
	LinePlan     trim.GroupMapping       `yaml:"line_plan" json:"line_plan"`
	References   []types.ReferenceLength `yaml:"references" json:"references"`
	Materials    []LineMaterial          `yaml:"materials" json:"materials"`
}

// Summary is the list view of a Model.
type Summary struct {
	ID           string  `json:"id"`
	Manufacturer string  `json:"manufacturer"`
	Model        string  `json:"model"`
	Size         string  `json:"size"`
	RowCount     int     `json:"row_count"`
	AspectRatio  float64 `json:"aspect_ratio"`
}

// Summary returns the list view of m.
func (m Model) Summary() Summary {
	return Summary{
		ID:           m.ID,
		Manufacturer: m.Manufacturer,
		Model:        m.Name,
		Size:         m.Size,
		RowCount:     m.RowCount,
		AspectRatio:  m.AspectRatio,
	}
}

// TrimInput combines the model geometry with a session's measurements.
func (m Model) TrimInput(lines []types.MeasuredLine, method types.Method, offsets types.Offsets) trim.Input {
	return trim.Input{
		RowCount:     m.RowCount,
		AspectRatio:  m.AspectRatio,
		Plan:         m.LinePlan,
		References:   m.References,
		Measurements: lines,
		Method:       method,
		Offsets:      offsets,
	}
}

// StrengthRecords returns the as-new strengths of the model's lines.
func (m Model) StrengthRecords() []types.StrengthRecord {
	out := make([]types.StrengthRecord, 0, len(m.Materials))
	for _, lm := range m.Materials {
		out = append(out, types.StrengthRecord{Row: lm.Row, CascadeLevel: lm.CascadeLevel, StrengthNew: lm.StrengthNew})
	}
	return out
}

// Material returns the line material for row and cascade level.
func (m Model) Material(row types.Row, cascade int) (LineMaterial, bool) {
	for _, lm := range m.Materials {
		if lm.Row == row && lm.CascadeLevel == cascade {
			return lm, true
		}
	}
	return LineMaterial{}, false
}

func (m Model) validate() error {
	if m.ID == "" {
		return fmt.Errorf("id must not be empty")
	}
	if m.RowCount < 1 || m.RowCount > types.MaxRows {
		return fmt.Errorf("model %q: row_count %d is out of range [1, %d]", m.ID, m.RowCount, types.MaxRows)
	}
	if m.AspectRatio < 0 {
		return fmt.Errorf("model %q: aspect_ratio must not be negative", m.ID)
	}
	return nil
}
