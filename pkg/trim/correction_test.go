package trim

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wingcheck/wingcheck/pkg/types"
)

func TestSelectLoops(t *testing.T) {
	tests := []struct {
		target float64
		want   LoopPlan
	}{
		{8, LoopPlan{LoopType: 1, Loops: 1, ShorteningMm: 10}},
		{10, LoopPlan{LoopType: 1, Loops: 1, ShorteningMm: 10}},
		{23, LoopPlan{LoopType: 2, Loops: 2, ShorteningMm: 30}},
		{30, LoopPlan{LoopType: 3, Loops: 1, ShorteningMm: 25}},
		{45, LoopPlan{LoopType: 5, Loops: 1, ShorteningMm: 45}},
		{90, LoopPlan{LoopType: 5, Loops: 2, ShorteningMm: 90}},
	}
	for _, tc := range tests {
		if got := SelectLoops(tc.target); got != tc.want {
			t.Errorf("SelectLoops(%v) = %+v, want %+v", tc.target, got, tc.want)
		}
	}
}

func TestSuggestCorrections(t *testing.T) {
	devs := map[types.Cell]sides{
		cell(types.GroupG1, types.RowA): {12.2, 3},
		cell(types.GroupG2, types.RowB): {-12.3, -10},
		cell(types.GroupG3, types.RowC): {55, 41},
	}
	got := SuggestCorrections(mustDeviations(t, measure(devs)), 10, Options{})

	want := []Correction{
		{Cell: cell(types.GroupG1, types.RowA), Side: types.SideLeft, AdjustmentMm: 12, Action: ActionShorten, Loops: &LoopPlan{LoopType: 1, Loops: 1, ShorteningMm: 10}},
		{Cell: cell(types.GroupG2, types.RowB), Side: types.SideLeft, AdjustmentMm: -12.5, Action: ActionLengthen},
		{Cell: cell(types.GroupG3, types.RowC), Side: types.SideLeft, Action: ActionRemeasure},
		{Cell: cell(types.GroupG3, types.RowC), Side: types.SideRight, AdjustmentMm: 41, Action: ActionRemeasure},
	}
	// 41 mm rounds to 41, beyond the 40 mm cap.
	want[3].AdjustmentMm = 0

	ignoreDeviation := cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().String() == ".DeviationMm"
	}, cmp.Ignore())
	if diff := cmp.Diff(want, got, ignoreDeviation); diff != "" {
		t.Errorf("SuggestCorrections mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggestCorrections_CustomCap(t *testing.T) {
	devs := map[types.Cell]sides{cell(types.GroupG3, types.RowC): {55, 0}}
	got := SuggestCorrections(mustDeviations(t, measure(devs)), 10, Options{MaxAdjustmentMm: 60})
	if len(got) != 1 || got[0].Action != ActionShorten || got[0].AdjustmentMm != 55 {
		t.Fatalf("got %+v, want one 55 mm shorten", got)
	}
	if got[0].Loops.LoopType != 5 || got[0].Loops.Loops != 1 {
		t.Errorf("loops = %+v, want one type 5 loop", *got[0].Loops)
	}
}
