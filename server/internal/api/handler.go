package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wingcheck/wingcheck/pkg/cloth"
	"github.com/wingcheck/wingcheck/pkg/strength"
	"github.com/wingcheck/wingcheck/pkg/trim"
	"github.com/wingcheck/wingcheck/pkg/types"
	"github.com/wingcheck/wingcheck/server/internal/catalog"
	"github.com/wingcheck/wingcheck/server/internal/metrics"
	"github.com/wingcheck/wingcheck/server/internal/store"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Handler is the HTTP handler for all /api/v1/* endpoints.
// It runs the engines on request bodies, records each assessment in the store
// and returns JSON responses.
type Handler struct {
	catalog  *catalog.Catalog
	store    *store.Store
	metrics  *metrics.Metrics
	log      *zap.Logger
	trimOpts trim.Options
	mux      *http.ServeMux
}

// New creates a Handler wired to the catalog, store and metrics and
// registers all routes.
func New(cat *catalog.Catalog, st *store.Store, m *metrics.Metrics, log *zap.Logger, trimOpts trim.Options) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{catalog: cat, store: st, metrics: m, log: log, trimOpts: trimOpts, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/models", h.listModels)
	h.mux.HandleFunc("/api/v1/models/", h.getModel) // subtree, extracts {id}
	h.mux.HandleFunc("/api/v1/trim/analyze", h.analyzeTrim)
	h.mux.HandleFunc("/api/v1/strength/distribution", h.distribution)
	h.mux.HandleFunc("/api/v1/strength/thresholds", h.thresholds)
	h.mux.HandleFunc("/api/v1/strength/evaluate", h.evaluate)
	h.mux.HandleFunc("/api/v1/strength/load-test", h.loadTest)
	h.mux.HandleFunc("/api/v1/cloth/summary", h.clothSummary)
	h.mux.HandleFunc("/api/v1/assessments", h.assessments)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- read-only routes -------------------------------------------------------

// health returns GET /api/v1/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	totals, err := h.metrics.Totals()
	if err != nil {
		h.log.Warn("api: read metrics totals", zap.Error(err))
	}
	resp := HealthResponse{
		Status:          "ok",
		ModelCount:      h.catalog.Count(),
		AssessmentCount: len(h.store.List()),
		Totals:          totals,
	}
	if resp.ModelCount == 0 {
		resp.Status = "degraded"
	}
	jsonResp(w, http.StatusOK, resp)
}

// listModels returns GET /api/v1/models.
func (h *Handler) listModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.catalog.List())
}

// getModel returns GET /api/v1/models/{id}.
func (h *Handler) getModel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/models/")
	if id == "" {
		h.listModels(w, r)
		return
	}
	m, ok := h.catalog.Get(id)
	if !ok {
		jsonErr(w, http.StatusNotFound, "model not found")
		return
	}

	resp := ModelResponse{Model: m, Materials: make([]MaterialInfo, 0, len(m.Materials))}
	for _, lm := range m.Materials {
		mat := strength.Classify(lm.Manufacturer, lm.Spec)
		info := MaterialInfo{LineMaterial: lm, Material: mat, Guidance: strength.Guidance(mat)}
		if lm.StrengthNew != nil {
			th, err := strength.Thresholds([]types.StrengthRecord{{Row: lm.Row, CascadeLevel: lm.CascadeLevel, StrengthNew: lm.StrengthNew}})
			if err == nil && len(th) == 1 {
				info.Threshold = &th[0]
			}
		}
		resp.Materials = append(resp.Materials, info)
	}
	jsonResp(w, http.StatusOK, resp)
}

// assessments returns GET /api/v1/assessments, newest first.
func (h *Handler) assessments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.store.List())
}

// --- assessment routes ------------------------------------------------------

// analyzeTrim handles POST /api/v1/trim/analyze.
func (h *Handler) analyzeTrim(w http.ResponseWriter, r *http.Request) {
	var req TrimRequest
	if !h.decodePost(w, r, &req) {
		return
	}

	in := trim.Input{
		RowCount:     req.RowCount,
		AspectRatio:  req.AspectRatio,
		Plan:         req.LinePlan,
		References:   req.References,
		Measurements: req.Measurements,
		Method:       req.Method,
		Offsets:      req.Offsets,
	}
	if req.ModelID != "" {
		m, ok := h.lookupModel(w, req.ModelID)
		if !ok {
			return
		}
		in = m.TrimInput(req.Measurements, req.Method, req.Offsets)
	}

	start := time.Now()
	res, err := trim.Analyze(in, h.trimOpts)
	if err != nil {
		h.engineErr(w, store.KindTrim, err)
		return
	}

	outcome := string(res.Shape.Shape)
	if res.Empty() {
		outcome = "not_measured"
	}
	a := h.record(store.KindTrim, req.ModelID, outcome,
		fmt.Sprintf("%d of %d cells out of ±%.0f mm tolerance", res.OutOfTolerance, len(res.Cells), res.ToleranceMm),
		res, start)

	jsonResp(w, http.StatusOK, TrimResponse{
		AssessmentID: a.ID,
		ModelID:      req.ModelID,
		Result:       res,
		Hints:        trimHints(res),
	})
}

// distribution handles POST /api/v1/strength/distribution.
func (h *Handler) distribution(w http.ResponseWriter, r *http.Request) {
	var req DistributionRequest
	if !h.decodePost(w, r, &req) {
		return
	}
	if req.ModelID != "" {
		m, ok := h.lookupModel(w, req.ModelID)
		if !ok {
			return
		}
		if req.RowCount == 0 {
			req.RowCount = m.RowCount
		}
		if req.TotalLoadKg == 0 {
			req.TotalLoadKg = m.MaxWeightKg
		}
	}

	start := time.Now()
	rows, err := strength.LoadDistribution(req.RowCount, req.TotalLoadKg)
	if err != nil {
		h.engineErr(w, store.KindDistribution, err)
		return
	}
	supported := strength.SupportedRowCount(req.RowCount)
	outcome := "computed"
	if !supported {
		outcome = "unsupported"
	}
	a := h.record(store.KindDistribution, req.ModelID, outcome,
		fmt.Sprintf("%.1f kg across %d rows", req.TotalLoadKg, req.RowCount), rows, start)

	jsonResp(w, http.StatusOK, DistributionResponse{AssessmentID: a.ID, Supported: supported, Rows: rows})
}

// thresholds handles POST /api/v1/strength/thresholds.
func (h *Handler) thresholds(w http.ResponseWriter, r *http.Request) {
	var req ThresholdsRequest
	if !h.decodePost(w, r, &req) {
		return
	}
	if req.ModelID != "" && len(req.Records) == 0 {
		m, ok := h.lookupModel(w, req.ModelID)
		if !ok {
			return
		}
		req.Records = m.StrengthRecords()
	}

	start := time.Now()
	th, err := strength.Thresholds(req.Records)
	if err != nil {
		h.engineErr(w, store.KindThresholds, err)
		return
	}
	a := h.record(store.KindThresholds, req.ModelID, "computed",
		fmt.Sprintf("%d of %d records with known strength", len(th), len(req.Records)), th, start)

	jsonResp(w, http.StatusOK, ThresholdsResponse{AssessmentID: a.ID, Thresholds: th})
}

// evaluate handles POST /api/v1/strength/evaluate.
func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !h.decodePost(w, r, &req) {
		return
	}

	start := time.Now()
	ev, err := strength.Evaluate(req.Measured, req.Original)
	if err != nil {
		h.engineErr(w, store.KindEvaluate, err)
		return
	}
	mat := strength.Classify(req.Manufacturer, req.Spec)
	resp := EvaluateResponse{
		Evaluation: ev,
		Material:   mat,
		Guidance:   strength.Guidance(mat),
		Hints:      evaluateHints(ev, mat),
	}
	a := h.record(store.KindEvaluate, "", string(ev.Result), ev.Detail, resp, start)
	resp.AssessmentID = a.ID

	jsonResp(w, http.StatusOK, resp)
}

// loadTest handles POST /api/v1/strength/load-test.
func (h *Handler) loadTest(w http.ResponseWriter, r *http.Request) {
	var req strength.LoadTestInput
	if !h.decodePost(w, r, &req) {
		return
	}

	start := time.Now()
	res, err := strength.LoadTest(req)
	if err != nil {
		h.engineErr(w, store.KindLoadTest, err)
		return
	}
	outcome := "computed"
	if !res.Supported {
		outcome = "unsupported"
	}
	a := h.record(store.KindLoadTest, "", outcome, res.Breakdown, res, start)

	jsonResp(w, http.StatusOK, LoadTestResponse{AssessmentID: a.ID, Result: res})
}

// clothSummary handles POST /api/v1/cloth/summary.
func (h *Handler) clothSummary(w http.ResponseWriter, r *http.Request) {
	var req ClothRequest
	if !h.decodePost(w, r, &req) {
		return
	}

	start := time.Now()
	points := make([]ClothPointResult, 0, len(req.Points))
	for _, p := range req.Points {
		pr := ClothPointResult{Location: p.Location}
		if p.PorosityValue != nil && p.PorosityMethod != "" {
			ev := cloth.EvaluatePorosity(*p.PorosityValue, p.PorosityMethod)
			pr.Porosity = &ev
		}
		if p.TearResistance != nil {
			ev := cloth.EvaluateTearResistance(*p.TearResistance)
			pr.Tear = &ev
		}
		if p.Result.Valid() {
			pr.Result = p.Result
		} else if res, ok := cloth.AutoResult(p); ok {
			pr.Result = res
		}
		points = append(points, pr)
	}
	summary := cloth.Summarize(req.Points)
	resp := ClothResponse{Points: points, Summary: summary}
	a := h.record(store.KindCloth, "", string(summary.Overall),
		fmt.Sprintf("%d points: %d pass, %d warning, %d fail", summary.TotalTests, summary.PassCount, summary.WarningCount, summary.FailCount),
		resp, start)
	resp.AssessmentID = a.ID

	jsonResp(w, http.StatusOK, resp)
}

// --- helpers ----------------------------------------------------------------

// decodePost enforces POST and decodes a JSON body into v, writing the error
// response itself when it returns false.
func (h *Handler) decodePost(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		jsonErr(w, http.StatusBadRequest, "malformed JSON body: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) lookupModel(w http.ResponseWriter, id string) (catalog.Model, bool) {
	m, ok := h.catalog.Get(id)
	if !ok {
		jsonErr(w, http.StatusNotFound, fmt.Sprintf("model %q not found", id))
	}
	return m, ok
}

// engineErr maps an engine error to a response: validation failures are 422,
// anything else is a 500.
func (h *Handler) engineErr(w http.ResponseWriter, kind string, err error) {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		h.metrics.ValidationFailed(kind)
		jsonResp(w, http.StatusUnprocessableEntity, errorResponse{Error: verr.Error(), Field: verr.Field})
		return
	}
	h.log.Error("api: assessment failed", zap.String("kind", kind), zap.Error(err))
	jsonErr(w, http.StatusInternalServerError, "internal error")
}

// record stores the assessment and updates metrics.
func (h *Handler) record(kind, modelID, outcome, summary string, result any, start time.Time) store.Assessment {
	h.metrics.Observe(kind, outcome, time.Since(start))
	a := h.store.Put(store.Assessment{
		Kind:    kind,
		ModelID: modelID,
		Outcome: outcome,
		Summary: summary,
		Result:  result,
	})
	h.log.Debug("api: assessment recorded",
		zap.String("id", a.ID), zap.String("kind", kind), zap.String("outcome", outcome))
	return a
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
