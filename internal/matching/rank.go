// internal/matching/rank.go
package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sana-bil/Smart-Scholar/internal/common/errors"
	"github.com/sana-bil/Smart-Scholar/internal/common/metrics"
	"github.com/sana-bil/Smart-Scholar/internal/models"
)

// DefaultTopN is the number of results surfaced by default.
const DefaultTopN = 3

// DefaultRecommendThreshold is the minimum composite score for a program
// to appear in the recommended view.
const DefaultRecommendThreshold = 60

// ValidateProfile rejects profiles that cannot be scored at all. Absent
// test scores are fine; an empty field or a nonsensical CGPA scale is not.
func ValidateProfile(profile models.StudentProfile) error {
	if strings.TrimSpace(profile.Field) == "" {
		return errors.NewProfileValidationError("field must not be empty")
	}
	if profile.CGPAScale <= 0 {
		return errors.NewProfileValidationError("cgpa_scale must be positive")
	}
	if profile.CGPA < 0 || profile.CGPA > profile.CGPAScale {
		return errors.NewProfileValidationError("cgpa must be between 0 and cgpa_scale")
	}
	if profile.WorkExperience < 0 {
		return errors.NewProfileValidationError("work_experience must not be negative")
	}
	return nil
}

// Rank scores every catalog row for the profile and returns the results
// sorted descending by composite score. The sort is stable, so programs
// with equal scores keep their catalog order. One malformed row cannot
// blank the result set: a panicking row is recovered into a zero-score
// fallback result.
func (e *Engine) Rank(ctx context.Context, profile models.StudentProfile, rows []models.ProgramWithRequirements) ([]models.MatchResult, error) {
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}

	start := time.Now()
	metrics.MatchQueriesTotal.WithLabelValues(e.cfg.Name).Inc()
	defer func() {
		metrics.MatchQueryDuration.WithLabelValues(e.cfg.Name).Observe(time.Since(start).Seconds())
	}()

	results := make([]models.MatchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, e.scoreSafe(ctx, profile, row))
		metrics.ProgramsScoredTotal.Inc()
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallMatch > results[j].OverallMatch
	})
	return results, nil
}

// scoreSafe wraps Score with a recovery barrier so a single malformed
// program row degrades to a deterministic zero-score result.
func (e *Engine) scoreSafe(ctx context.Context, profile models.StudentProfile, row models.ProgramWithRequirements) (result models.MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ScoringFallbacksTotal.Inc()
			e.log.Error("scoring failed for program row, substituting fallback result", map[string]interface{}{
				"programId": row.Program.ProgramID,
				"panic":     fmt.Sprintf("%v", r),
			})
			result = newResult(row.Program)
			result.Reason = ReasonScoringFailed
		}
	}()
	return e.Score(ctx, profile, row)
}

// TopN returns the first n ranked results, or all of them when fewer
// exist. n values below 1 fall back to the default.
func TopN(results []models.MatchResult, n int) []models.MatchResult {
	if n < 1 {
		n = DefaultTopN
	}
	if n > len(results) {
		n = len(results)
	}
	return results[:n]
}

// FilterRecommended keeps only results at or above the threshold.
// Thresholds below 1 fall back to the default.
func FilterRecommended(results []models.MatchResult, threshold int) []models.MatchResult {
	if threshold < 1 {
		threshold = DefaultRecommendThreshold
	}
	recommended := make([]models.MatchResult, 0, len(results))
	for _, result := range results {
		if result.OverallMatch >= threshold {
			recommended = append(recommended, result)
		}
	}
	return recommended
}
