package trim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wingcheck/wingcheck/pkg/types"
)

func TestCalculateDeviations_DifferentialMethod(t *testing.T) {
	g1a := cell(types.GroupG1, types.RowA)
	cells := []types.Cell{g1a}
	refs := []types.ReferenceLength{
		{Row: types.RowA, Group: types.GroupG1, Side: types.SideLeft, LengthMm: 6400},
		{Row: types.RowA, Group: types.GroupG1, Side: types.SideRight, LengthMm: 6400},
	}
	lines := []types.MeasuredLine{
		{Row: types.RowA, Group: types.GroupG1, Side: types.SideLeft, CascadeLevel: 1, Value: 12},
		{Row: types.RowA, Group: types.GroupG1, Side: types.SideRight, CascadeLevel: 1, Value: -4},
	}
	got, err := CalculateDeviations(cells, refs, lines, types.MethodDifferential, types.Offsets{Glider: 6400, Brake: 30}, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, 6412.0, got[0].Left.MeasuredMm)
	assert.Equal(t, 12.0, got[0].Left.DeviationMm)
	assert.Equal(t, -4.0, got[0].Right.DeviationMm)
	assert.Equal(t, 4.0, got[0].DifferentialMm)
	assert.Equal(t, 16.0, got[0].AsymmetryMm)
	assert.False(t, got[0].OutOfTolerance)
}

func TestCalculateDeviations_DuplicatesAndCascades(t *testing.T) {
	g1a := cell(types.GroupG1, types.RowA)
	refs := []types.ReferenceLength{
		{Row: types.RowA, Group: types.GroupG1, Side: types.SideLeft, LengthMm: 6400},
	}
	lines := []types.MeasuredLine{
		{Row: types.RowA, Group: types.GroupG1, Side: types.SideLeft, CascadeLevel: 1, Value: 6430},
		{Row: types.RowA, Group: types.GroupG1, Side: types.SideLeft, CascadeLevel: 2, Value: 6420},
		// Re-measured: replaces the first entry.
		{Row: types.RowA, Group: types.GroupG1, Side: types.SideLeft, CascadeLevel: 1, Value: 6410},
	}
	got, err := CalculateDeviations([]types.Cell{g1a}, refs, lines, types.MethodAbsolute, types.Offsets{}, 10)
	require.NoError(t, err)

	left := got[0].Left
	assert.True(t, left.Present)
	assert.Equal(t, 2, left.Samples)
	assert.Equal(t, 15.0, left.DeviationMm)
	assert.False(t, got[0].Right.Present, "right side has no reference or measurement")
	assert.False(t, got[0].Complete)
}

func TestCalculateDeviations_NegativeOffsetValuesAllowed(t *testing.T) {
	refs := []types.ReferenceLength{{Row: types.RowA, Group: types.GroupG1, Side: types.SideLeft, LengthMm: 6400}}
	lines := []types.MeasuredLine{{Row: types.RowA, Group: types.GroupG1, Side: types.SideLeft, Value: -15}}
	got, err := CalculateDeviations([]types.Cell{cell(types.GroupG1, types.RowA)}, refs, lines, types.MethodDifferential, types.Offsets{Glider: 6400}, 10)
	require.NoError(t, err)
	assert.Equal(t, -15.0, got[0].Left.DeviationMm)
}
