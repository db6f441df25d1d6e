// internal/models/profile.go
package models

// StudentProfile is the transient academic profile built for a single
// matching query. CGPA is expressed relative to CGPAScale.
type StudentProfile struct {
	CGPA           float64  `json:"cgpa"`
	CGPAScale      float64  `json:"cgpa_scale"`
	Field          string   `json:"field"`
	TOEFL          *int     `json:"toefl,omitempty"`
	IELTS          *float64 `json:"ielts,omitempty"`
	Cambridge      string   `json:"cambridge,omitempty"`
	WorkExperience int      `json:"work_experience"`
}

// HasLanguageScore reports whether the student supplied any English
// proficiency evidence at all.
func (p *StudentProfile) HasLanguageScore() bool {
	return p.IELTS != nil || p.TOEFL != nil || p.Cambridge != ""
}
