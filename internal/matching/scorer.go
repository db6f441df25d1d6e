// internal/matching/scorer.go
package matching

import (
	"context"
	"fmt"
	"math"

	"github.com/sana-bil/Smart-Scholar/internal/classify"
	"github.com/sana-bil/Smart-Scholar/internal/common/logger"
	"github.com/sana-bil/Smart-Scholar/internal/embedding"
	"github.com/sana-bil/Smart-Scholar/internal/models"
	"github.com/sana-bil/Smart-Scholar/internal/normalize"
)

// Reason labels attached to every MatchResult.
const (
	ReasonDomainMismatch = "Domain Mismatch"
	ReasonUnrelatedField = "Unrelated Field"
	ReasonMatchFound     = "Match Found"
	ReasonScoringFailed  = "Scoring Failed"
)

// Engine scores one student profile against program rows. It owns its
// embedding handle and classifier and exposes pure scoring operations;
// instances are safe for reuse across queries.
type Engine struct {
	cfg        ScoringConfig
	embedder   embedding.Provider
	classifier *classify.Classifier
	log        logger.Logger
}

func NewEngine(cfg ScoringConfig, embedder embedding.Provider, classifier *classify.Classifier, log logger.Logger) *Engine {
	return &Engine{
		cfg:        cfg,
		embedder:   embedder,
		classifier: classifier,
		log:        log,
	}
}

// Preset returns the name of the active scoring preset.
func (e *Engine) Preset() string {
	return e.cfg.Name
}

// Score computes the composite match for a single program row. It is a
// total function: classification and embedding failures degrade to the
// gated zero-score outcomes rather than surfacing to the caller.
func (e *Engine) Score(ctx context.Context, profile models.StudentProfile, row models.ProgramWithRequirements) models.MatchResult {
	result := newResult(row.Program)

	studentField := normalize.Clean(profile.Field)
	programField := normalize.Clean(row.Program.FieldOrName())

	studentDomain := e.classifier.Infer(ctx, studentField)
	programDomain := e.classifier.Infer(ctx, programField)
	if studentDomain != programDomain {
		result.Reason = ReasonDomainMismatch
		result.Feedback = append(result.Feedback,
			fmt.Sprintf("Your field falls under %s but this program is in %s", studentDomain, programDomain))
		return result
	}

	similarity := e.fieldSimilarity(ctx, studentField, programField)
	if similarity < SimilarityGate {
		result.Reason = ReasonUnrelatedField
		result.Feedback = append(result.Feedback,
			fmt.Sprintf("Your field %q is not closely related to %q", profile.Field, row.Program.FieldOrName()))
		return result
	}

	result.FieldScore = fieldScore(similarity)
	result.Feedback = append(result.Feedback,
		fmt.Sprintf("Your field aligns with this program (similarity %.2f)", similarity))

	var note string
	result.CGPAScore, note = e.cgpaScore(profile, row.Requirements)
	result.Feedback = append(result.Feedback, note)

	result.LanguageScore, note = e.languageScore(profile, row.Requirements)
	result.Feedback = append(result.Feedback, note)

	result.ExperienceScore, note = experienceScore(profile, row.Requirements)
	result.Feedback = append(result.Feedback, note)

	result.BonusScore = BonusScore

	total := result.FieldScore + result.CGPAScore + result.LanguageScore +
		result.ExperienceScore + result.BonusScore
	if total > OverallMatchCap {
		total = OverallMatchCap
	}
	result.OverallMatch = total
	result.Status = statusFor(total)
	result.Reason = ReasonMatchFound
	return result
}

// newResult copies the program identity fields into a zeroed result. The
// weak status and zero sub-scores are the short-circuit outcome; full
// scoring overwrites them.
func newResult(program models.ProgramRecord) models.MatchResult {
	return models.MatchResult{
		ProgramID:           program.ProgramID,
		ProgramName:         program.ProgramName,
		Acronym:             program.Acronym,
		Field:               program.Field,
		Consortium:          program.Consortium,
		Scholarship:         program.Scholarship,
		ApplicationDeadline: program.ApplicationDeadline,
		Status:              models.StatusWeak,
	}
}

// fieldSimilarity embeds both cleaned field texts and returns their cosine
// similarity. An unavailable embedder yields 0, which the similarity gate
// then turns into the unrelated-field outcome.
func (e *Engine) fieldSimilarity(ctx context.Context, studentField, programField string) float64 {
	studentVec, err := e.embedder.Embed(ctx, studentField)
	if err != nil {
		e.log.WithError(err).Warn("embedding unavailable for student field, gating to zero similarity", nil)
		return 0
	}
	programVec, err := e.embedder.Embed(ctx, programField)
	if err != nil {
		e.log.WithError(err).Warn("embedding unavailable for program field, gating to zero similarity", nil)
		return 0
	}
	return embedding.Cosine(studentVec, programVec)
}

func fieldScore(similarity float64) int {
	switch {
	case similarity >= SimilarityTierHigh:
		return FieldScoreMax
	case similarity >= SimilarityTierMid:
		return FieldScoreMid
	default:
		return FieldScoreLow
	}
}

// cgpaScore normalizes the student's CGPA to the program's requirement
// scale and applies the linear decay below the floor. Absence of a CGPA
// requirement awards the full allocation.
func (e *Engine) cgpaScore(profile models.StudentProfile, req *models.RequirementRecord) (int, string) {
	if req == nil || req.MinCGPA == nil {
		return CGPAScoreMax, "No CGPA requirement specified"
	}

	scale := req.CGPAScale
	if scale <= 0 {
		scale = 4.0
	}
	required := *req.MinCGPA
	normalized := (profile.CGPA / profile.CGPAScale) * scale

	if normalized >= required {
		return CGPAScoreMax, fmt.Sprintf("Your CGPA %.2f/%.1f meets the requirement %.2f/%.1f",
			profile.CGPA, profile.CGPAScale, required, scale)
	}

	gap := required - normalized
	score := int(math.Floor(float64(CGPAScoreMax) - gap*CGPADecayPerGap))
	if score < e.cfg.CGPAGapFloor {
		score = e.cfg.CGPAGapFloor
	}
	return score, fmt.Sprintf("Your CGPA %.2f/%.1f is below the requirement %.2f/%.1f",
		profile.CGPA, profile.CGPAScale, required, scale)
}

// languageScore applies the configured variant over the program's English
// proficiency floors. No floors at all means the full allocation.
func (e *Engine) languageScore(profile models.StudentProfile, req *models.RequirementRecord) (int, string) {
	if !req.HasLanguageRequirement() {
		return LanguageScoreMax, "No language requirement specified"
	}
	if e.cfg.LanguageMode == LanguageFirstPresent {
		return firstPresentLanguageScore(profile, req)
	}
	return proportionalLanguageScore(profile, req)
}

// proportionalLanguageScore counts one hit per requirement dimension the
// student meets and scales the allocation by hits/dimensions.
func proportionalLanguageScore(profile models.StudentProfile, req *models.RequirementRecord) (int, string) {
	if !profile.HasLanguageScore() {
		return 0, "Program requires an English proficiency score but none was provided"
	}

	dimensions, hits := 0, 0
	if req.MinIELTSScore != nil {
		dimensions++
		if profile.IELTS != nil && *profile.IELTS >= *req.MinIELTSScore {
			hits++
		}
	}
	if req.MinTOEFLScore != nil {
		dimensions++
		if profile.TOEFL != nil && *profile.TOEFL >= *req.MinTOEFLScore {
			hits++
		}
	}
	if req.MinCambridgeScore != nil {
		dimensions++
		if cambridgeRank(profile.Cambridge) >= cambridgeRank(*req.MinCambridgeScore) && cambridgeRank(profile.Cambridge) > 0 {
			hits++
		}
	}

	score := int(math.Floor(float64(LanguageScoreMax) * float64(hits) / float64(dimensions)))
	if hits == dimensions {
		return score, "Your English proficiency meets all program requirements"
	}
	return score, fmt.Sprintf("Your English proficiency meets %d of %d program requirements", hits, dimensions)
}

// firstPresentLanguageScore checks IELTS first and falls back to TOEFL;
// the first dimension both sides supply decides the whole allocation.
func firstPresentLanguageScore(profile models.StudentProfile, req *models.RequirementRecord) (int, string) {
	if req.MinIELTSScore != nil && profile.IELTS != nil {
		if *profile.IELTS >= *req.MinIELTSScore {
			return LanguageScoreMax, fmt.Sprintf("Your IELTS %.1f meets the requirement %.1f", *profile.IELTS, *req.MinIELTSScore)
		}
		return 0, fmt.Sprintf("Your IELTS %.1f is below the requirement %.1f", *profile.IELTS, *req.MinIELTSScore)
	}
	if req.MinTOEFLScore != nil && profile.TOEFL != nil {
		if *profile.TOEFL >= *req.MinTOEFLScore {
			return LanguageScoreMax, fmt.Sprintf("Your TOEFL %d meets the requirement %d", *profile.TOEFL, *req.MinTOEFLScore)
		}
		return 0, fmt.Sprintf("Your TOEFL %d is below the requirement %d", *profile.TOEFL, *req.MinTOEFLScore)
	}
	return 0, "Program requires an English proficiency score but none was provided"
}

// cambridgeRank orders the Cambridge levels; unknown or absent ranks 0.
func cambridgeRank(level string) int {
	switch level {
	case "C1":
		return 1
	case "C2":
		return 2
	default:
		return 0
	}
}

func experienceScore(profile models.StudentProfile, req *models.RequirementRecord) (int, string) {
	if req == nil || req.WorkExperienceYears == nil || *req.WorkExperienceYears == 0 {
		return ExperienceScoreMax, "No work experience requirement specified"
	}
	required := *req.WorkExperienceYears
	if profile.WorkExperience >= required {
		return ExperienceScoreMax, fmt.Sprintf("Your %d years of experience meet the %d year requirement",
			profile.WorkExperience, required)
	}
	return 0, fmt.Sprintf("Your %d years of experience are below the %d year requirement",
		profile.WorkExperience, required)
}

func statusFor(total int) models.MatchStatus {
	switch {
	case total >= StatusStrongMin:
		return models.StatusStrong
	case total >= StatusQualifiedMin:
		return models.StatusQualified
	default:
		return models.StatusWeak
	}
}
