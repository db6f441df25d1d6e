// internal/models/requirement.go
package models

// RequirementRecord holds the structured eligibility thresholds extracted
// from a program's free-text requirements. Nil pointer fields mean "no
// requirement imposed" — absence is valid domain data, distinct from zero.
// Records are created by a full offline extraction pass and never mutated
// afterwards except by re-extraction.
type RequirementRecord struct {
	ProgramID            int64    `json:"program_id" db:"program_id"`
	MinTOEFLScore        *int     `json:"min_toefl_score,omitempty" db:"min_toefl_score"`
	MinIELTSScore        *float64 `json:"min_ielts_score,omitempty" db:"min_ielts_score"`
	MinCambridgeScore    *string  `json:"min_cambridge_score,omitempty" db:"min_cambridge_score"`
	MinCGPA              *float64 `json:"min_cgpa,omitempty" db:"min_cgpa"`
	CGPAScale            float64  `json:"cgpa_scale" db:"cgpa_scale"`
	EnglishRequired      bool     `json:"english_required" db:"english_required"`
	WorkExperienceYears  *int     `json:"work_experience_years,omitempty" db:"work_experience_years"`
	AcceptedDegreeFields *string  `json:"accepted_degree_fields,omitempty" db:"accepted_degree_fields"`
	RequirementTextRaw   string   `json:"requirement_text_raw" db:"requirement_text_raw"`
	ParsingConfidence    float64  `json:"parsing_confidence" db:"parsing_confidence"`
}

// HasLanguageRequirement reports whether the program imposes any English
// proficiency floor (TOEFL, IELTS or Cambridge).
func (r *RequirementRecord) HasLanguageRequirement() bool {
	if r == nil {
		return false
	}
	return r.MinTOEFLScore != nil || r.MinIELTSScore != nil || r.MinCambridgeScore != nil
}
