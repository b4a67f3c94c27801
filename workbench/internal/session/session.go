package session

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wingcheck/wingcheck/pkg/cloth"
	"github.com/wingcheck/wingcheck/pkg/trim"
	"github.com/wingcheck/wingcheck/pkg/types"
)

// Session is one measuring session on one wing, as saved by the technician.
// Fields map 1:1 to the session YAML file.
type Session struct {
	// Name labels the session in output, e.g. "Trainer 3 ML, 2026 check".
	Name string `yaml:"name"`

	// Wing geometry, usually copied from the reference catalog.
	RowCount    int                     `yaml:"row_count"`
	AspectRatio float64                 `yaml:"aspect_ratio"`
	LinePlan    trim.GroupMapping       `yaml:"line_plan"`
	References  []types.ReferenceLength `yaml:"references"`

	Method       types.Method         `yaml:"method"`
	Offsets      types.Offsets        `yaml:"offsets"`
	Measurements []types.MeasuredLine `yaml:"measurements"`

	// Cloth holds the porosity and tear test points.
	Cloth []cloth.Point `yaml:"cloth"`
}

// TrimInput returns the session as input for trim.Analyze.
func (s *Session) TrimInput() trim.Input {
	return trim.Input{
		RowCount:     s.RowCount,
		AspectRatio:  s.AspectRatio,
		Plan:         s.LinePlan,
		References:   s.References,
		Measurements: s.Measurements,
		Method:       s.Method,
		Offsets:      s.Offsets,
	}
}

// Load reads and parses the session file at path, then validates its shape.
// Value checks (negative lengths, cells outside the plan) are left to the
// engines so they surface as *types.ValidationError.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("session: read file: %w", err)
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session: parse yaml: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return &s, nil
}

func (s *Session) validate() error {
	if s.RowCount < 0 || s.RowCount > types.MaxRows {
		return fmt.Errorf("row_count %d out of range 0..%d", s.RowCount, types.MaxRows)
	}
	if !s.Method.Valid() {
		return fmt.Errorf("unknown method %q", s.Method)
	}
	for i, p := range s.Cloth {
		if p.Location == "" {
			return fmt.Errorf("cloth[%d]: location is required", i)
		}
	}
	return nil
}
