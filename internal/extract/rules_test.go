// internal/extract/rules_test.go
package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleExtractor_FullScenario(t *testing.T) {
	e := NewRuleExtractor()
	rec := e.Extract(7, "IELTS ≥ 6.5, minimum 3 years experience, GPA 3.0/4.0")

	require.NotNil(t, rec.MinIELTSScore)
	assert.Equal(t, 6.5, *rec.MinIELTSScore)

	require.NotNil(t, rec.WorkExperienceYears)
	assert.Equal(t, 3, *rec.WorkExperienceYears)

	require.NotNil(t, rec.MinCGPA)
	assert.Equal(t, 3.0, *rec.MinCGPA)
	assert.Equal(t, 4.0, rec.CGPAScale)

	assert.True(t, rec.EnglishRequired)
	assert.Nil(t, rec.MinTOEFLScore)
	assert.Equal(t, int64(7), rec.ProgramID)
	assert.Equal(t, defaultConfidence, rec.ParsingConfidence)
}

func TestParseTOEFL(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected *int
	}{
		{"ibt with symbol", "TOEFL iBT ≥ 90 required", intPtr(90)},
		{"plain score", "TOEFL 100", intPtr(100)},
		{"minimum word", "TOEFL iBT minimum 80", intPtr(80)},
		{"below valid range rejected", "TOEFL 20", nil},
		{"above valid range rejected", "TOEFL 150", nil},
		{"no mention", "IELTS 6.5 only", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTOEFL(tt.text)
			if tt.expected == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.expected, *got)
			}
		})
	}
}

func TestParseIELTS(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected *float64
	}{
		{"academic variant", "IELTS Academic ≥ 6.5", floatPtr(6.5)},
		{"plain", "IELTS 7.0", floatPtr(7.0)},
		{"integer score not matched", "IELTS 7", nil},
		{"no mention", "TOEFL 90", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseIELTS(tt.text)
			if tt.expected == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.expected, *got)
			}
		})
	}
}

func TestParseCambridge(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected *string
	}{
		{"explicit cambridge", "Cambridge C1 accepted", strPtr("C1")},
		{"advanced modifier", "C1 Advanced certificate", strPtr("C1")},
		{"proficiency modifier", "C2 Proficiency", strPtr("C2")},
		{"lowercase normalized", "cambridge c2", strPtr("C2")},
		{"no level", "Cambridge University", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCambridge(tt.text)
			if tt.expected == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.expected, *got)
			}
		})
	}
}

func TestParseCGPA(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected *float64
	}{
		{"gpa keyword", "minimum GPA 3.0", floatPtr(3.0)},
		{"cgpa with slash scale", "CGPA 3.5/4.0", floatPtr(3.5)},
		{"long form", "grade point average of 3.2", floatPtr(3.2)},
		{"bare comparator", ">= 3.0 required", floatPtr(3.0)},
		{"out of range rejected", "GPA 7.5", nil},
		{"no mention", "IELTS 6.0", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCGPA(tt.text)
			if tt.expected == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.expected, *got)
			}
		})
	}
}

func TestParseCGPAScale(t *testing.T) {
	assert.Equal(t, 5.0, parseCGPAScale("CGPA 4.0/5"))
	assert.Equal(t, 5.0, parseCGPAScale("out of 5"))
	assert.Equal(t, 5.0, parseCGPAScale("on a scale of 5"))
	assert.Equal(t, 10.0, parseCGPAScale("7.5/10"))
	assert.Equal(t, 10.0, parseCGPAScale("scale of 10"))
	assert.Equal(t, 4.0, parseCGPAScale("GPA 3.0/4.0"))
	assert.Equal(t, 4.0, parseCGPAScale(""))
}

func TestParseEnglishRequired(t *testing.T) {
	assert.True(t, parseEnglishRequired("English proficiency required"))
	assert.True(t, parseEnglishRequired("TOEFL iBT 90"))
	assert.True(t, parseEnglishRequired("a recognized language test"))
	assert.False(t, parseEnglishRequired("Bachelor in Mechanical required"))
	assert.False(t, parseEnglishRequired(""))
}

func TestParseWorkExperience(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected *int
	}{
		{"minimum years", "minimum 3 years experience", intPtr(3)},
		{"plus years", "2+ years of work experience", intPtr(2)},
		{"professional", "5 years professional background", intPtr(5)},
		{"implausible rejected", "100 years experience", nil},
		{"no mention", "GPA 3.0", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseWorkExperience(tt.text)
			if tt.expected == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.expected, *got)
			}
		})
	}
}

func TestParseAcceptedFields(t *testing.T) {
	got := parseAcceptedFields("Applicants with a Computer Science or Mathematics background")
	require.NotNil(t, got)
	assert.Equal(t, "Computer Science, Mathematics", *got)

	assert.Nil(t, parseAcceptedFields("open to all applicants"))
	assert.Nil(t, parseAcceptedFields(""))
}

func TestRuleExtractor_Idempotent(t *testing.T) {
	e := NewRuleExtractor()
	const text = "TOEFL 92, GPA 3.4/4.0, Computer Science, 2 years experience"

	first := e.Extract(1, text)
	second := e.Extract(1, text)
	assert.Equal(t, first, second)
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
