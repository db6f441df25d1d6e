// internal/models/result.go
package models

// MatchStatus is the qualitative tier derived from the composite score.
type MatchStatus string

const (
	StatusStrong    MatchStatus = "strong"
	StatusQualified MatchStatus = "qualified"
	StatusWeak      MatchStatus = "weak"
)

// StandingLabel returns the display label used by the eligibility report.
func (s MatchStatus) StandingLabel() string {
	switch s {
	case StatusStrong:
		return "HIGHLY MATCHED"
	case StatusQualified:
		return "QUALIFIED"
	default:
		return "LOW MATCH"
	}
}

// MatchResult is one scored program for one student query. OverallMatch is
// always the capped sum of the five sub-scores, never computed any other way.
type MatchResult struct {
	ProgramID           int64       `json:"program_id"`
	ProgramName         string      `json:"program_name"`
	Acronym             string      `json:"acronym"`
	Field               string      `json:"field"`
	Consortium          string      `json:"consortium"`
	Scholarship         string      `json:"scholarship"`
	ApplicationDeadline string      `json:"application_deadline"`
	OverallMatch        int         `json:"overall_match"`
	FieldScore          int         `json:"field_score"`
	CGPAScore           int         `json:"cgpa_score"`
	LanguageScore       int         `json:"lang_score"`
	ExperienceScore     int         `json:"exp_score"`
	BonusScore          int         `json:"bonus_score"`
	Status              MatchStatus `json:"status"`
	Reason              string      `json:"reason"`
	Feedback            []string    `json:"feedback,omitempty"`
}
