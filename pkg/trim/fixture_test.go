package trim

import "github.com/wingcheck/wingcheck/pkg/types"

// A three-row wing: A and B carry G1–G3 and the stabilizer, C carries the
// main groups only. D and the brake row are present in the plan but outside
// the model's row count.
var testPlan = GroupMapping{
	types.RowA: {"G1A", "G1A", "G2A", "G2A", "G3A", "STA"},
	types.RowB: {"G1B", "G1B", "G2B", "G2B", "G3B", "STB"},
	types.RowC: {"G1C", "G2C", "G3C", ""},
	types.RowD: {"G1D"},
	"K":        {"K1", "K2"},
}

const testRowCount = 3

var testRefRow = map[types.Row]float64{
	types.RowA: 6400,
	types.RowB: 6350,
	types.RowC: 6450,
}

func cell(group types.Group, row types.Row) types.Cell {
	return types.Cell{Row: row, Group: group}
}

func testReferences() []types.ReferenceLength {
	var refs []types.ReferenceLength
	for _, c := range ExtractCells(testRowCount, testPlan) {
		for _, s := range []types.Side{types.SideLeft, types.SideRight} {
			refs = append(refs, types.ReferenceLength{Row: c.Row, Group: c.Group, Side: s, LengthMm: testRefRow[c.Row]})
		}
	}
	return refs
}

// sides is a (left, right) deviation pair in mm.
type sides [2]float64

// measure builds absolute measurements for every plan cell: reference plus
// the deviation given in devs, zero for cells not listed.
func measure(devs map[types.Cell]sides) []types.MeasuredLine {
	var lines []types.MeasuredLine
	for _, c := range ExtractCells(testRowCount, testPlan) {
		d := devs[c]
		lines = append(lines,
			types.MeasuredLine{Row: c.Row, Group: c.Group, Side: types.SideLeft, CascadeLevel: 1, Value: testRefRow[c.Row] + d[0]},
			types.MeasuredLine{Row: c.Row, Group: c.Group, Side: types.SideRight, CascadeLevel: 1, Value: testRefRow[c.Row] + d[1]},
		)
	}
	return lines
}

// rowDevs applies the same deviation to both sides of every plan cell in row.
func rowDevs(into map[types.Cell]sides, row types.Row, dev float64) map[types.Cell]sides {
	if into == nil {
		into = map[types.Cell]sides{}
	}
	for _, c := range ExtractCells(testRowCount, testPlan) {
		if c.Row == row {
			into[c] = sides{dev, dev}
		}
	}
	return into
}

// testInput uses aspect ratio 6.5, a 10 mm tolerance.
func testInput(lines []types.MeasuredLine) Input {
	return Input{
		RowCount:     testRowCount,
		AspectRatio:  6.5,
		Plan:         testPlan,
		References:   testReferences(),
		Measurements: lines,
		Method:       types.MethodAbsolute,
	}
}
