package api

import (
	"github.com/wingcheck/wingcheck/pkg/cloth"
	"github.com/wingcheck/wingcheck/pkg/strength"
	"github.com/wingcheck/wingcheck/pkg/trim"
	"github.com/wingcheck/wingcheck/pkg/types"
	"github.com/wingcheck/wingcheck/server/internal/catalog"
	"github.com/wingcheck/wingcheck/server/internal/metrics"
)

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status          string         `json:"status"`
	ModelCount      int            `json:"model_count"`
	AssessmentCount int            `json:"assessment_count"`
	Totals          metrics.Totals `json:"totals"`
}

// ModelResponse is the payload for GET /api/v1/models/{id}.
type ModelResponse struct {
	Model     catalog.Model  `json:"model"`
	Materials []MaterialInfo `json:"materials"`
}

// MaterialInfo is one line material with its classification, testing
// guidance and destructive-test limits.
type MaterialInfo struct {
	catalog.LineMaterial
	Material  types.Material      `json:"material"`
	Guidance  string              `json:"guidance"`
	Threshold *strength.Threshold `json:"threshold,omitempty"`
}

// TrimRequest is the body of POST /api/v1/trim/analyze. Geometry comes from
// the catalog when ModelID is set, otherwise from the inline fields.
type TrimRequest struct {
	ModelID      string                  `json:"model_id,omitempty"`
	RowCount     int                     `json:"row_count,omitempty"`
	AspectRatio  float64                 `json:"aspect_ratio,omitempty"`
	LinePlan     trim.GroupMapping       `json:"line_plan,omitempty"`
	References   []types.ReferenceLength `json:"references,omitempty"`
	Method       types.Method            `json:"method"`
	Offsets      types.Offsets           `json:"offsets"`
	Measurements []types.MeasuredLine    `json:"measurements"`
}

// TrimResponse is the payload for POST /api/v1/trim/analyze.
type TrimResponse struct {
	AssessmentID string      `json:"assessment_id"`
	ModelID      string      `json:"model_id,omitempty"`
	Result       trim.Result `json:"result"`
	Hints        []Hint      `json:"hints"`
}

// DistributionRequest is the body of POST /api/v1/strength/distribution.
// With ModelID, zero RowCount and TotalLoadKg default to the model's values.
type DistributionRequest struct {
	ModelID     string  `json:"model_id,omitempty"`
	RowCount    int     `json:"row_count"`
	TotalLoadKg float64 `json:"total_load_kg"`
}

// DistributionResponse is the payload for POST /api/v1/strength/distribution.
type DistributionResponse struct {
	AssessmentID string             `json:"assessment_id"`
	Supported    bool               `json:"supported"`
	Rows         []strength.RowLoad `json:"rows"`
}

// ThresholdsRequest is the body of POST /api/v1/strength/thresholds. With
// ModelID and no records, the model's line materials are used.
type ThresholdsRequest struct {
	ModelID string                 `json:"model_id,omitempty"`
	Records []types.StrengthRecord `json:"records"`
}

// ThresholdsResponse is the payload for POST /api/v1/strength/thresholds.
type ThresholdsResponse struct {
	AssessmentID string               `json:"assessment_id"`
	Thresholds   []strength.Threshold `json:"thresholds"`
}

// EvaluateRequest is the body of POST /api/v1/strength/evaluate.
type EvaluateRequest struct {
	Measured     float64 `json:"measured"`
	Original     float64 `json:"original"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	Spec         string  `json:"spec,omitempty"`
}

// EvaluateResponse is the payload for POST /api/v1/strength/evaluate.
type EvaluateResponse struct {
	AssessmentID string              `json:"assessment_id"`
	Evaluation   strength.Evaluation `json:"evaluation"`
	Material     types.Material      `json:"material"`
	Guidance     string              `json:"guidance"`
	Hints        []Hint              `json:"hints"`
}

// LoadTestResponse is the payload for POST /api/v1/strength/load-test.
type LoadTestResponse struct {
	AssessmentID string                  `json:"assessment_id"`
	Result       strength.LoadTestResult `json:"result"`
}

// ClothRequest is the body of POST /api/v1/cloth/summary.
type ClothRequest struct {
	Points []cloth.Point `json:"points"`
}

// ClothPointResult is one evaluated cloth point.
type ClothPointResult struct {
	Location string            `json:"location"`
	Porosity *cloth.Evaluation `json:"porosity,omitempty"`
	Tear     *cloth.Evaluation `json:"tear,omitempty"`
	Result   cloth.Result      `json:"result,omitempty"`
}

// ClothResponse is the payload for POST /api/v1/cloth/summary.
type ClothResponse struct {
	AssessmentID string             `json:"assessment_id"`
	Points       []ClothPointResult `json:"points"`
	Summary      cloth.Summary      `json:"summary"`
}

// errorResponse is a generic JSON error body. Field is set for validation
// failures.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
