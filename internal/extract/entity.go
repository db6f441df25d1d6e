// internal/extract/entity.go
package extract

import (
	"regexp"

	"github.com/sana-bil/Smart-Scholar/internal/models"
)

// Per-field confidence levels for the entity-assisted strategy. Numeric
// fields corroborated by an independent entity pass score higher than pure
// pattern fallbacks.
const (
	confidenceCorroborated = 0.95
	confidenceDuration     = 0.90
	confidencePattern      = 0.85
	confidenceNone         = 0.70
)

// Entity tag patterns used by the lexicon tagger. These run independently of
// the field rules; agreement between the two passes raises confidence.
var (
	testScoreEntity = regexp.MustCompile(`(?i)\b(?:TOEFL|IELTS)\b[^.;]{0,40}?\d`)
	gradeEntity     = regexp.MustCompile(`(?i)\b(?:CGPA|GPA|grade\s+point\s+average)\b[^.;]{0,30}?\d\.\d`)
	levelEntity     = regexp.MustCompile(`(?i)\b(?:Cambridge|Advanced|Proficiency)\b`)
	durationEntity  = regexp.MustCompile(`(?i)\b\d+\+?\s+years?\b`)
)

// EntityExtractor is the entity-recognition-assisted strategy. It reuses the
// rule-based field extraction and layers a lexicon entity tagger on top to
// estimate per-record parsing confidence. Swappable with RuleExtractor
// behind the Extractor interface.
type EntityExtractor struct {
	rules *RuleExtractor
}

var _ Extractor = (*EntityExtractor)(nil)

func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{rules: NewRuleExtractor()}
}

// Extract runs the rule pass, then scores confidence as the mean of the
// non-zero per-field confidences. When no field is confidently extracted the
// record carries the low default of 0.70.
func (e *EntityExtractor) Extract(programID int64, text string) models.RequirementRecord {
	rec := e.rules.Extract(programID, text)

	hasScoreEntity := testScoreEntity.MatchString(text)
	hasGradeEntity := gradeEntity.MatchString(text)
	hasLevelEntity := levelEntity.MatchString(text)
	hasDurationEntity := durationEntity.MatchString(text)

	var confidences []float64

	if rec.MinTOEFLScore != nil || rec.MinIELTSScore != nil {
		confidences = append(confidences, corroborated(hasScoreEntity))
	}
	if rec.MinCambridgeScore != nil {
		if hasLevelEntity {
			confidences = append(confidences, confidenceDuration)
		} else {
			confidences = append(confidences, confidencePattern)
		}
	}
	if rec.MinCGPA != nil {
		confidences = append(confidences, corroborated(hasGradeEntity))
	}
	if rec.WorkExperienceYears != nil {
		if hasDurationEntity {
			confidences = append(confidences, confidenceDuration)
		} else {
			confidences = append(confidences, confidencePattern)
		}
	}
	if rec.AcceptedDegreeFields != nil {
		confidences = append(confidences, confidencePattern)
	}

	if len(confidences) == 0 {
		rec.ParsingConfidence = confidenceNone
		return rec
	}

	var sum float64
	for _, c := range confidences {
		sum += c
	}
	rec.ParsingConfidence = sum / float64(len(confidences))
	return rec
}

func corroborated(hit bool) float64 {
	if hit {
		return confidenceCorroborated
	}
	return confidencePattern
}
