package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wingcheck/wingcheck/pkg/trim"
	"github.com/wingcheck/wingcheck/pkg/types"
	"github.com/wingcheck/wingcheck/server/internal/api"
	"github.com/wingcheck/wingcheck/server/internal/catalog"
	"github.com/wingcheck/wingcheck/server/internal/metrics"
	"github.com/wingcheck/wingcheck/server/internal/store"
)

// --- test helpers -----------------------------------------------------------

const modelID = "sample-3row-ml"

type fixture struct {
	h       http.Handler
	cat     *catalog.Catalog
	store   *store.Store
	metrics *metrics.Metrics
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	cat := catalog.New("../catalog/testdata", zap.NewNop())
	require.NoError(t, cat.Reload())
	st := store.New(5*time.Minute, zap.NewNop())
	m := metrics.New()
	return fixture{
		h:       api.New(cat, st, m, zap.NewNop(), trim.Options{}),
		cat:     cat,
		store:   st,
		metrics: m,
	}
}

// atReference returns one measurement per reference side with the reference
// length, shifted by delta[cell] where given.
func atReference(t *testing.T, cat *catalog.Catalog, delta map[string]float64) []types.MeasuredLine {
	t.Helper()
	m, ok := cat.Get(modelID)
	require.True(t, ok)
	lines := make([]types.MeasuredLine, 0, len(m.References))
	for _, ref := range m.References {
		c := types.Cell{Row: ref.Row, Group: ref.Group}
		lines = append(lines, types.MeasuredLine{
			Row:          ref.Row,
			Group:        ref.Group,
			Side:         ref.Side,
			CascadeLevel: 1,
			Value:        ref.LengthMm + delta[c.String()],
		})
	}
	return lines
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func post(t *testing.T, h http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON: %v (body: %s)", err, rr.Body.String())
	}
}

// --- /api/v1/health ---------------------------------------------------------

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rr := get(t, f.h, "/api/v1/health")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}
	var resp api.HealthResponse
	decode(t, rr, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.ModelCount)
	assert.Equal(t, 0, resp.AssessmentCount)
}

func TestHealth_EmptyCatalogIsDegraded(t *testing.T) {
	cat := catalog.New(t.TempDir(), zap.NewNop())
	require.NoError(t, cat.Reload())
	h := api.New(cat, store.New(time.Minute, nil), metrics.New(), nil, trim.Options{})

	var resp api.HealthResponse
	decode(t, get(t, h, "/api/v1/health"), &resp)
	assert.Equal(t, "degraded", resp.Status)
}

func TestMethodNotAllowed(t *testing.T) {
	f := newFixture(t)
	for _, path := range []string{"/api/v1/health", "/api/v1/models", "/api/v1/models/" + modelID, "/api/v1/assessments"} {
		rr := post(t, f.h, path, "{}")
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, path)
	}
	for _, path := range []string{
		"/api/v1/trim/analyze",
		"/api/v1/strength/distribution",
		"/api/v1/strength/thresholds",
		"/api/v1/strength/evaluate",
		"/api/v1/strength/load-test",
		"/api/v1/cloth/summary",
	} {
		rr := get(t, f.h, path)
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, path)
	}
}

// --- /api/v1/models ---------------------------------------------------------

func TestModels_List(t *testing.T) {
	f := newFixture(t)
	rr := get(t, f.h, "/api/v1/models")
	require.Equal(t, http.StatusOK, rr.Code)

	var list []catalog.Summary
	decode(t, rr, &list)
	require.Len(t, list, 1)
	assert.Equal(t, modelID, list[0].ID)
	assert.Equal(t, 3, list[0].RowCount)
}

func TestModels_Get(t *testing.T) {
	f := newFixture(t)
	rr := get(t, f.h, "/api/v1/models/"+modelID)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.ModelResponse
	decode(t, rr, &resp)
	assert.Equal(t, "Trainer 3", resp.Model.Name)
	require.NotEmpty(t, resp.Materials)
	for _, mi := range resp.Materials {
		assert.NotEmpty(t, mi.Guidance, "guidance for %s%d", mi.Row, mi.CascadeLevel)
		if mi.StrengthNew == nil {
			assert.Nil(t, mi.Threshold, "no threshold without strength_new")
		} else {
			require.NotNil(t, mi.Threshold)
			assert.Equal(t, *mi.StrengthNew*10/100, mi.Threshold.RejectDaN)
		}
	}
}

func TestModels_NotFound(t *testing.T) {
	f := newFixture(t)
	rr := get(t, f.h, "/api/v1/models/no-such-wing")
	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}

// --- /api/v1/trim/analyze ---------------------------------------------------

func TestTrim_ByModel(t *testing.T) {
	f := newFixture(t)
	rr := post(t, f.h, "/api/v1/trim/analyze", api.TrimRequest{
		ModelID:      modelID,
		Method:       types.MethodAbsolute,
		Measurements: atReference(t, f.cat, map[string]float64{"G1A": 23.2}),
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp api.TrimResponse
	decode(t, rr, &resp)
	assert.NotEmpty(t, resp.AssessmentID)
	assert.Equal(t, 15.0, resp.Result.ToleranceMm)
	assert.Len(t, resp.Result.Cells, 11)
	assert.Equal(t, 1, resp.Result.OutOfTolerance)
	assert.Equal(t, trim.ShapeLocalized, resp.Result.Shape.Shape)
	assert.Equal(t, types.RowA, resp.Result.Shape.Row)

	require.Len(t, resp.Result.Corrections, 2)
	for _, c := range resp.Result.Corrections {
		assert.Equal(t, trim.ActionShorten, c.Action)
		assert.Equal(t, 23.0, c.AdjustmentMm)
		assert.Equal(t, []int{1, 2}, c.Positions)
	}
	require.NotEmpty(t, resp.Hints)
	assert.Equal(t, "warning", resp.Hints[0].Level)

	stored, ok := f.store.Get(resp.AssessmentID)
	require.True(t, ok)
	assert.Equal(t, store.KindTrim, stored.Kind)
	assert.Equal(t, modelID, stored.ModelID)
	assert.Equal(t, string(trim.ShapeLocalized), stored.Outcome)
}

func TestTrim_NoMeasurements(t *testing.T) {
	f := newFixture(t)
	rr := post(t, f.h, "/api/v1/trim/analyze", api.TrimRequest{ModelID: modelID})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.TrimResponse
	decode(t, rr, &resp)
	assert.True(t, resp.Result.Empty())
	require.Len(t, resp.Hints, 1)
	assert.Equal(t, "not_measured", resp.Hints[0].Key)
}

func TestTrim_ValidationError(t *testing.T) {
	f := newFixture(t)
	lines := atReference(t, f.cat, nil)
	lines = append(lines, types.MeasuredLine{Row: types.RowD, Group: types.GroupG1, Side: types.SideLeft, Value: 6000})

	rr := post(t, f.h, "/api/v1/trim/analyze", api.TrimRequest{ModelID: modelID, Measurements: lines})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code, rr.Body.String())

	var body map[string]string
	decode(t, rr, &body)
	assert.Contains(t, body["field"], "G1D left")
	assert.NotEmpty(t, body["error"])

	totals, err := f.metrics.Totals()
	require.NoError(t, err)
	assert.Equal(t, 1.0, totals.ValidationFailures)
	assert.Equal(t, 0, f.store.Count())
}

func TestTrim_UnknownModel(t *testing.T) {
	f := newFixture(t)
	rr := post(t, f.h, "/api/v1/trim/analyze", api.TrimRequest{ModelID: "nope"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTrim_MalformedJSON(t *testing.T) {
	f := newFixture(t)
	for _, body := range []string{"{", `{"measurements": "x"}`, `{"unknown_field": 1}`} {
		rr := post(t, f.h, "/api/v1/trim/analyze", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
}

func TestTrim_Inline(t *testing.T) {
	f := newFixture(t)
	rr := post(t, f.h, "/api/v1/trim/analyze", api.TrimRequest{
		RowCount:    2,
		AspectRatio: 6.5,
		LinePlan:    trim.GroupMapping{types.RowA: {"G1A"}, types.RowB: {"G1B"}},
		References: []types.ReferenceLength{
			{Row: types.RowA, Group: types.GroupG1, Side: types.SideLeft, LengthMm: 6400},
			{Row: types.RowA, Group: types.GroupG1, Side: types.SideRight, LengthMm: 6400},
		},
		Method: types.MethodAbsolute,
		Measurements: []types.MeasuredLine{
			{Row: types.RowA, Group: types.GroupG1, Side: types.SideLeft, Value: 6400},
			{Row: types.RowA, Group: types.GroupG1, Side: types.SideRight, Value: 6400},
		},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp api.TrimResponse
	decode(t, rr, &resp)
	assert.Equal(t, 10.0, resp.Result.ToleranceMm)
	assert.Zero(t, resp.Result.OutOfTolerance)
	assert.Empty(t, resp.Result.Corrections)
}

// --- /api/v1/strength/* -----------------------------------------------------

func TestDistribution_ModelDefaults(t *testing.T) {
	f := newFixture(t)
	rr := post(t, f.h, "/api/v1/strength/distribution", api.DistributionRequest{ModelID: modelID})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp api.DistributionResponse
	decode(t, rr, &resp)
	assert.True(t, resp.Supported)
	require.Len(t, resp.Rows, 3)
	assert.Equal(t, 55.0, resp.Rows[0].LoadKg)
	assert.Equal(t, 44.0, resp.Rows[1].LoadKg)
	assert.Equal(t, 11.0, resp.Rows[2].LoadKg)
}

func TestDistribution_Errors(t *testing.T) {
	f := newFixture(t)

	rr := post(t, f.h, "/api/v1/strength/distribution", api.DistributionRequest{RowCount: 3, TotalLoadKg: -1})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var body map[string]string
	decode(t, rr, &body)
	assert.Equal(t, "total_load_kg", body["field"])

	rr = post(t, f.h, "/api/v1/strength/distribution", api.DistributionRequest{RowCount: 5, TotalLoadKg: 100})
	require.Equal(t, http.StatusOK, rr.Code)
	var resp api.DistributionResponse
	decode(t, rr, &resp)
	assert.False(t, resp.Supported)
	assert.Empty(t, resp.Rows)
}

func TestThresholds_FromModel(t *testing.T) {
	f := newFixture(t)
	rr := post(t, f.h, "/api/v1/strength/thresholds", api.ThresholdsRequest{ModelID: modelID})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp api.ThresholdsResponse
	decode(t, rr, &resp)
	// The model has five materials, one without a rated strength.
	assert.Len(t, resp.Thresholds, 4)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		measured float64
		want     string
		hint     string
	}{
		{"pass", 50, "pass", "ok"},
		{"exact warning boundary passes", 38, "pass", "ok"},
		{"warning", 37, "warning", "warning"},
		{"reject", 18, "reject", "critical"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			rr := post(t, f.h, "/api/v1/strength/evaluate", api.EvaluateRequest{
				Measured: tc.measured, Original: 190, Manufacturer: "Liros", Spec: "PPSL 190 Technora",
			})
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			var resp api.EvaluateResponse
			decode(t, rr, &resp)
			assert.Equal(t, tc.want, string(resp.Evaluation.Result))
			assert.Equal(t, types.MaterialAramid, resp.Material)
			require.NotEmpty(t, resp.Hints)
			assert.Equal(t, tc.hint, resp.Hints[0].Level)
		})
	}
}

func TestEvaluate_ZeroOriginal(t *testing.T) {
	f := newFixture(t)
	rr := post(t, f.h, "/api/v1/strength/evaluate", api.EvaluateRequest{Measured: 10, Original: 0})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestLoadTest(t *testing.T) {
	f := newFixture(t)
	rr := post(t, f.h, "/api/v1/strength/load-test", map[string]interface{}{
		"row": "A", "side": "left", "row_count": 3, "max_weight_kg": 110, "strength_new": 190, "lines_in_row": 20,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp api.LoadTestResponse
	decode(t, rr, &resp)
	assert.True(t, resp.Result.Supported)
	// 50% of 880 daN over 20 lines is 22, plus 20% of 190.
	assert.Equal(t, 60.0, resp.Result.LoadDaN)
}

// --- /api/v1/cloth/summary --------------------------------------------------

func TestClothSummary(t *testing.T) {
	f := newFixture(t)
	rr := post(t, f.h, "/api/v1/cloth/summary", `{"points": [
		{"location": "center top", "porosity_value": 30, "porosity_method": "jdc", "tear_resistance": 900},
		{"location": "tip", "result": "fail"}
	]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp api.ClothResponse
	decode(t, rr, &resp)
	require.Len(t, resp.Points, 2)
	assert.NotNil(t, resp.Points[0].Porosity)
	assert.NotNil(t, resp.Points[0].Tear)
	assert.Equal(t, "fail", string(resp.Points[1].Result))
	assert.Equal(t, 2, resp.Summary.TotalTests)
	assert.Equal(t, "fail", string(resp.Summary.Overall))
}

// --- /api/v1/assessments ----------------------------------------------------

func TestAssessments_NewestFirst(t *testing.T) {
	f := newFixture(t)
	post(t, f.h, "/api/v1/strength/evaluate", api.EvaluateRequest{Measured: 50, Original: 190})
	time.Sleep(2 * time.Millisecond)
	post(t, f.h, "/api/v1/strength/distribution", api.DistributionRequest{RowCount: 2, TotalLoadKg: 100})

	rr := get(t, f.h, "/api/v1/assessments")
	require.Equal(t, http.StatusOK, rr.Code)

	var list []store.Assessment
	decode(t, rr, &list)
	require.Len(t, list, 2)
	assert.Equal(t, store.KindDistribution, list[0].Kind)
	assert.Equal(t, store.KindEvaluate, list[1].Kind)

	totals, err := f.metrics.Totals()
	require.NoError(t, err)
	assert.Equal(t, 2.0, totals.Assessments)
	assert.Equal(t, 1.0, totals.ByKind[store.KindEvaluate])
}
