// internal/server/handler_test.go
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sana-bil/Smart-Scholar/internal/common/logger"
	"github.com/sana-bil/Smart-Scholar/internal/matching"
	"github.com/sana-bil/Smart-Scholar/internal/models"
)

type stubMatcher struct {
	results []models.MatchResult
	err     error
}

func (s *stubMatcher) Rank(_ context.Context, profile models.StudentProfile, _ []models.ProgramWithRequirements) ([]models.MatchResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	if err := matching.ValidateProfile(profile); err != nil {
		return nil, err
	}
	return s.results, nil
}

func (s *stubMatcher) Preset() string { return "strict" }

type stubCatalog struct {
	rows      []models.ProgramWithRequirements
	lastField string
	err       error
}

func (s *stubCatalog) ListWithRequirements(context.Context) ([]models.ProgramWithRequirements, error) {
	return s.rows, s.err
}

func (s *stubCatalog) ListByField(_ context.Context, fieldFragment string) ([]models.ProgramWithRequirements, error) {
	s.lastField = fieldFragment
	return s.rows, s.err
}

type stubRenderer struct{}

func (stubRenderer) Render(models.StudentProfile, []models.MatchResult) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func rankedResults() []models.MatchResult {
	return []models.MatchResult{
		{ProgramID: 1, ProgramName: "EMCS", OverallMatch: 95, Status: models.StatusStrong, Reason: "Match Found"},
		{ProgramID: 2, ProgramName: "MSc Data", OverallMatch: 70, Status: models.StatusQualified, Reason: "Match Found"},
		{ProgramID: 3, ProgramName: "MSc Arts", OverallMatch: 10, Status: models.StatusWeak, Reason: "Unrelated Field"},
	}
}

func newTestHandler(matcher *stubMatcher, catalog *stubCatalog, t *testing.T) *Handler {
	return NewHandler(matcher, catalog, stubRenderer{}, nil, 60, logger.NewTestLogger(t))
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"profile": map[string]interface{}{
			"cgpa":       3.6,
			"cgpa_scale": 4.0,
			"field":      "Computer Science",
			"ielts":      7.0,
		},
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandler_Match(t *testing.T) {
	matcher := &stubMatcher{results: rankedResults()}
	handler := newTestHandler(matcher, &stubCatalog{}, t)

	rec := postJSON(t, handler.Match, "/api/v1/match", validBody())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "strict", resp.Preset)
	assert.Equal(t, 3, resp.TotalPrograms)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, int64(1), resp.Results[0].ProgramID)
}

func TestHandler_MatchRecommendedOnlyAndTopN(t *testing.T) {
	matcher := &stubMatcher{results: rankedResults()}
	handler := newTestHandler(matcher, &stubCatalog{}, t)

	body := validBody()
	body["recommended_only"] = true
	body["top_n"] = 1

	rec := postJSON(t, handler.Match, "/api/v1/match", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.TotalPrograms)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(1), resp.Results[0].ProgramID)
}

func TestHandler_MatchFieldFilter(t *testing.T) {
	matcher := &stubMatcher{results: rankedResults()}
	catalog := &stubCatalog{}
	handler := newTestHandler(matcher, catalog, t)

	body := validBody()
	body["field_filter"] = "Computer"

	rec := postJSON(t, handler.Match, "/api/v1/match", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Computer", catalog.lastField)
}

func TestHandler_MatchValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"missing profile", func(b map[string]interface{}) { delete(b, "profile") }},
		{"empty field", func(b map[string]interface{}) {
			b["profile"].(map[string]interface{})["field"] = ""
		}},
		{"cgpa out of range", func(b map[string]interface{}) {
			b["profile"].(map[string]interface{})["cgpa"] = 42.0
		}},
		{"unknown cgpa scale", func(b map[string]interface{}) {
			b["profile"].(map[string]interface{})["cgpa_scale"] = 7.0
		}},
		{"ielts out of range", func(b map[string]interface{}) {
			b["profile"].(map[string]interface{})["ielts"] = 9.5
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(&stubMatcher{results: rankedResults()}, &stubCatalog{}, t)

			body := validBody()
			tt.mutate(body)

			rec := postJSON(t, handler.Match, "/api/v1/match", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "PROFILE_VALIDATION_FAILED", resp["code"])
		})
	}
}

func TestHandler_MatchCatalogError(t *testing.T) {
	handler := newTestHandler(&stubMatcher{results: rankedResults()}, &stubCatalog{err: assert.AnError}, t)

	rec := postJSON(t, handler.Match, "/api/v1/match", validBody())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_MatchReport(t *testing.T) {
	handler := newTestHandler(&stubMatcher{results: rankedResults()}, &stubCatalog{}, t)

	rec := postJSON(t, handler.MatchReport, "/api/v1/match/report", validBody())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestHandler_ListPrograms(t *testing.T) {
	catalog := &stubCatalog{rows: []models.ProgramWithRequirements{
		{Program: models.ProgramRecord{ProgramID: 1, ProgramName: "EMCS"}},
	}}
	handler := newTestHandler(&stubMatcher{}, catalog, t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/programs?field=Computer", nil)
	rec := httptest.NewRecorder()
	handler.ListPrograms(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Computer", catalog.lastField)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["total"])
}

func TestHandler_Healthz(t *testing.T) {
	pingers := map[string]Pinger{
		"postgres": stubPinger{},
		"redis":    stubPinger{err: assert.AnError},
	}
	handler := NewHandler(&stubMatcher{}, &stubCatalog{}, stubRenderer{}, pingers, 60, logger.NewTestLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.Healthz(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	checks := resp["checks"].(map[string]interface{})
	assert.Equal(t, "ok", checks["postgres"])
	assert.Contains(t, checks["redis"], "unhealthy")
}
