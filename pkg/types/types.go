package types

import "fmt"

// Row is a front-to-back line tier.
type Row string

// Line rows in front-to-back order.
const (
	RowA Row = "A"
	RowB Row = "B"
	RowC Row = "C"
	RowD Row = "D"
)

// MaxRows is the largest row count a glider model can have.
const MaxRows = 4

var rowOrder = []Row{RowA, RowB, RowC, RowD}

// Rows returns the first count rows in front-to-back order.
// Counts outside 1..MaxRows yield nil.
func Rows(count int) []Row {
	if count < 1 || count > MaxRows {
		return nil
	}
	return append([]Row(nil), rowOrder[:count]...)
}

// Index returns the row's front-to-back position (A = 0), or -1 when r is
// not a known row.
func (r Row) Index() int {
	for i, known := range rowOrder {
		if r == known {
			return i
		}
	}
	return -1
}

// Group is a lateral line bundle within a row.
type Group string

// Groups in inboard-to-outboard order, stabilizer last.
const (
	GroupG1 Group = "G1"
	GroupG2 Group = "G2"
	GroupG3 Group = "G3"
	GroupST Group = "ST"
)

var groupOrder = []Group{GroupG1, GroupG2, GroupG3, GroupST}

// Groups returns every group in display order.
func Groups() []Group {
	return append([]Group(nil), groupOrder...)
}

// Index returns the group's display position, or -1 when g is not known.
func (g Group) Index() int {
	for i, known := range groupOrder {
		if g == known {
			return i
		}
	}
	return -1
}

// Stabilizer reports whether g is the stabilizer group.
func (g Group) Stabilizer() bool { return g == GroupST }

// Side is the left or right half of the wing as seen by the pilot.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Valid reports whether s is left or right.
func (s Side) Valid() bool { return s == SideLeft || s == SideRight }

// Cell is one (row, group) position of a model's line plan.
type Cell struct {
	Row   Row   `json:"row" yaml:"row"`
	Group Group `json:"group" yaml:"group"`
}

func (c Cell) String() string { return string(c.Group) + string(c.Row) }

// Method is how line lengths were measured.
type Method string

const (
	// MethodAbsolute compares measured lengths directly to the reference.
	MethodAbsolute Method = "absolute"
	// MethodDifferential measures an offset from a baseline; the session
	// glider offset is added before comparison.
	MethodDifferential Method = "differential"
)

// Valid reports whether m is a known method. The empty method is treated as
// absolute.
func (m Method) Valid() bool {
	return m == "" || m == MethodAbsolute || m == MethodDifferential
}

// Offsets are the session-level additive offsets, in mm, used with the
// differential method. Brake applies to brake lines only, which are outside
// the A–D line plan.
type Offsets struct {
	Glider float64 `json:"glider" yaml:"glider"`
	Brake  float64 `json:"brake" yaml:"brake"`
}

// ReferenceLength is a manufacturer nominal length for one side of a cell.
type ReferenceLength struct {
	Row      Row     `json:"row" yaml:"row"`
	Group    Group   `json:"group" yaml:"group"`
	Side     Side    `json:"side" yaml:"side"`
	LengthMm float64 `json:"length_mm" yaml:"length_mm"`
}

// MeasuredLine is one physical measurement. Value is a length in mm for the
// absolute method and an offset in mm for the differential method.
type MeasuredLine struct {
	Row          Row     `json:"row" yaml:"row"`
	Group        Group   `json:"group" yaml:"group"`
	Side         Side    `json:"side" yaml:"side"`
	CascadeLevel int     `json:"cascade_level" yaml:"cascade_level"`
	Value        float64 `json:"value" yaml:"value"`
}

// Cell returns the (row, group) cell the measurement belongs to.
func (m MeasuredLine) Cell() Cell { return Cell{Row: m.Row, Group: m.Group} }

// StrengthRecord is the as-new rated breaking strength, in daN, of one line
// specification. A nil StrengthNew means the manufacturer data is incomplete.
type StrengthRecord struct {
	Row          Row      `json:"row" yaml:"row"`
	CascadeLevel int      `json:"cascade_level" yaml:"cascade_level"`
	StrengthNew  *float64 `json:"strength_new" yaml:"strength_new"`
}

// Material is a line material classification.
type Material string

const (
	MaterialVectran Material = "vectran"
	MaterialDyneema Material = "dyneema"
	MaterialAramid  Material = "aramid"
	MaterialUnknown Material = "unknown"
)

// ValidationError reports an input value the engines refuse to compute on.
// Field names the offending input (a cell such as "G2B left", or a parameter
// name such as "total_load_kg").
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// Invalid builds a *ValidationError.
func Invalid(field string, value any, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}
