// internal/server/handler.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	stderrors "github.com/sana-bil/Smart-Scholar/internal/common/errors"
	"github.com/sana-bil/Smart-Scholar/internal/common/logger"
	"github.com/sana-bil/Smart-Scholar/internal/matching"
	"github.com/sana-bil/Smart-Scholar/internal/models"
)

// Matcher is the scoring engine surface the HTTP layer depends on.
type Matcher interface {
	Rank(ctx context.Context, profile models.StudentProfile, rows []models.ProgramWithRequirements) ([]models.MatchResult, error)
	Preset() string
}

// CatalogReader supplies the joined program catalog.
type CatalogReader interface {
	ListWithRequirements(ctx context.Context) ([]models.ProgramWithRequirements, error)
	ListByField(ctx context.Context, fieldFragment string) ([]models.ProgramWithRequirements, error)
}

// ReportRenderer turns a ranked result list into the PDF eligibility report.
type ReportRenderer interface {
	Render(profile models.StudentProfile, results []models.MatchResult) ([]byte, error)
}

// Pinger reports backing-store health for the readiness endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the wired collaborators for all HTTP endpoints.
type Handler struct {
	matcher            Matcher
	catalog            CatalogReader
	renderer           ReportRenderer
	pingers            map[string]Pinger
	recommendThreshold int
	log                logger.Logger
}

func NewHandler(matcher Matcher, catalog CatalogReader, renderer ReportRenderer,
	pingers map[string]Pinger, recommendThreshold int, log logger.Logger) *Handler {
	return &Handler{
		matcher:            matcher,
		catalog:            catalog,
		renderer:           renderer,
		pingers:            pingers,
		recommendThreshold: recommendThreshold,
		log:                log,
	}
}

// MatchRequest is the body of the match endpoints.
type MatchRequest struct {
	Profile         models.StudentProfile `json:"profile"`
	FieldFilter     string                `json:"field_filter,omitempty"`
	TopN            int                   `json:"top_n,omitempty"`
	RecommendedOnly bool                  `json:"recommended_only,omitempty"`
}

// MatchResponse is the body of POST /api/v1/match.
type MatchResponse struct {
	Preset        string               `json:"preset"`
	TotalPrograms int                  `json:"total_programs"`
	Results       []models.MatchResult `json:"results"`
}

var matchRequestSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"profile"},
	"properties": map[string]interface{}{
		"profile": map[string]interface{}{
			"type":     "object",
			"required": []string{"cgpa", "cgpa_scale", "field"},
			"properties": map[string]interface{}{
				"cgpa":            map[string]interface{}{"type": "number", "minimum": 0, "maximum": 10},
				"cgpa_scale":      map[string]interface{}{"type": "number", "enum": []interface{}{4.0, 5.0, 10.0}},
				"field":           map[string]interface{}{"type": "string", "minLength": 1},
				"toefl":           map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 120},
				"ielts":           map[string]interface{}{"type": "number", "minimum": 0, "maximum": 9},
				"cambridge":       map[string]interface{}{"type": "string", "enum": []interface{}{"C1", "C2"}},
				"work_experience": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 50},
			},
		},
		"field_filter":     map[string]interface{}{"type": "string"},
		"top_n":            map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 100},
		"recommended_only": map[string]interface{}{"type": "boolean"},
	},
}

// decodeMatchRequest validates the raw body against the request schema
// before binding it, so malformed payloads fail with field-level messages.
func decodeMatchRequest(r *http.Request) (MatchRequest, error) {
	var req MatchRequest

	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return req, stderrors.NewProfileValidationError("request body is not valid JSON")
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(matchRequestSchema), gojsonschema.NewGoLoader(raw))
	if err != nil {
		return req, stderrors.NewProfileValidationError(err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return req, stderrors.NewProfileValidationError(strings.Join(details, "; "))
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return req, stderrors.NewProfileValidationError(err.Error())
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, stderrors.NewProfileValidationError(err.Error())
	}
	return req, nil
}

// Match handles POST /api/v1/match.
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	req, err := decodeMatchRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	results, total, err := h.rank(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, MatchResponse{
		Preset:        h.matcher.Preset(),
		TotalPrograms: total,
		Results:       results,
	})
}

// MatchReport handles POST /api/v1/match/report, returning the rendered
// PDF instead of JSON.
func (h *Handler) MatchReport(w http.ResponseWriter, r *http.Request) {
	req, err := decodeMatchRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	results, _, err := h.rank(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	pdfData, err := h.renderer.Render(req.Profile, results)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="eligibility-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdfData)
}

func (h *Handler) rank(ctx context.Context, req MatchRequest) ([]models.MatchResult, int, error) {
	var (
		rows []models.ProgramWithRequirements
		err  error
	)
	if req.FieldFilter != "" {
		rows, err = h.catalog.ListByField(ctx, req.FieldFilter)
	} else {
		rows, err = h.catalog.ListWithRequirements(ctx)
	}
	if err != nil {
		return nil, 0, err
	}

	results, err := h.matcher.Rank(ctx, req.Profile, rows)
	if err != nil {
		return nil, 0, err
	}
	total := len(results)

	if req.RecommendedOnly {
		results = matching.FilterRecommended(results, h.recommendThreshold)
	}
	if req.TopN > 0 {
		results = matching.TopN(results, req.TopN)
	}
	return results, total, nil
}

// ListPrograms handles GET /api/v1/programs with an optional ?field=
// substring filter.
func (h *Handler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	var (
		rows []models.ProgramWithRequirements
		err  error
	)
	if field := r.URL.Query().Get("field"); field != "" {
		rows, err = h.catalog.ListByField(r.Context(), field)
	} else {
		rows, err = h.catalog.ListWithRequirements(r.Context())
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":    len(rows),
		"programs": rows,
	})
}

// Healthz handles GET /healthz, pinging every backing store.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	checks := make(map[string]string, len(h.pingers))
	for name, pinger := range h.pingers {
		if err := pinger.Ping(r.Context()); err != nil {
			checks[name] = fmt.Sprintf("unhealthy: %v", err)
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	h.writeJSON(w, status, map[string]interface{}{
		"status": http.StatusText(status),
		"checks": checks,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.WithError(err).Error("failed to encode response body", nil)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	stdErr := stderrors.Normalize(err)
	status := http.StatusInternalServerError
	if stdErr.Code == stderrors.ErrCodeProfileValidationFailed {
		status = http.StatusBadRequest
	}

	h.log.WithError(err).Warn("request failed", map[string]interface{}{
		"code": string(stdErr.Code),
	})
	h.writeJSON(w, status, map[string]interface{}{
		"error":   stdErr.Message,
		"code":    stdErr.Code,
		"details": stdErr.Details,
	})
}
