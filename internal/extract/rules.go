// internal/extract/rules.go
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sana-bil/Smart-Scholar/internal/models"
)

// defaultConfidence is assigned to every record produced by the pure
// rule-based strategy.
const defaultConfidence = 0.85

// Accepted score ranges; values outside are treated as non-matches.
const (
	minValidTOEFL = 50
	maxValidTOEFL = 120
	maxValidIELTS = 9.0
	maxValidCGPA  = 5.0
	maxValidYears = 50
)

var (
	toeflPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)TOEFL\s+iBT\s*(?:≥|>=|minimum\s+|score\s+(?:of\s+)?)?\s*(\d{2,3})`),
		regexp.MustCompile(`(?i)TOEFL\s*(?:iBT)?\s*(?:≥|>=|minimum\s+)?\s*(\d{2,3})`),
	}
	ieltsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)IELTS\s+Academic\s*(?:≥|>=|minimum\s+)?\s*(\d\.\d)`),
		regexp.MustCompile(`(?i)IELTS\s*(?:≥|>=|minimum\s+)?\s*(\d\.\d)`),
	}
	cambridgePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Cambridge\s+(C[12])`),
		regexp.MustCompile(`(?i)(C[12])\s+(?:Advanced|Proficiency)`),
	}
	cgpaPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:CGPA|GPA|grade\s+point\s+average)\s*(?:of\s+)?(?:≥|>=|minimum\s+)?\s*(\d\.\d+)`),
		regexp.MustCompile(`(?:≥|>=)\s*(\d\.\d+)`),
	}
	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:minimum\s+)?(\d+)\+?\s+years?\s+(?:of\s+)?(?:work\s+|professional\s+|relevant\s+)?experience`),
		regexp.MustCompile(`(?i)(\d+)\s+years?\s+(?:experience|professional)`),
	}
)

// englishKeywords flag programs that impose an English proficiency
// requirement of any kind.
var englishKeywords = []string{"english", "toefl", "ielts", "cambridge", "proficiency", "certificate", "language test"}

// fieldVocabulary is the fixed set of degree field names recognized in
// accepted-field clauses. Output order follows this list so extraction
// stays deterministic. Matching is word-bounded; short names like "IT"
// must not fire inside unrelated words.
var fieldVocabulary = []string{
	"Computer Science", "Engineering", "Mathematics", "Physics", "Chemistry",
	"Biology", "Medicine", "Pharmacy", "Business", "Economics", "Law",
	"Psychology", "Sociology", "History", "Languages", "Architecture",
	"Environmental Science", "Agriculture", "Geology", "Astronomy",
	"Statistics", "Data Science", "IT", "Informatics",
}

var fieldMatchers = buildFieldMatchers()

func buildFieldMatchers() []*regexp.Regexp {
	matchers := make([]*regexp.Regexp, len(fieldVocabulary))
	for i, f := range fieldVocabulary {
		matchers[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(f) + `\b`)
	}
	return matchers
}

// RuleExtractor is the pure pattern-rule strategy.
type RuleExtractor struct{}

var _ Extractor = (*RuleExtractor)(nil)

func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

// Extract applies every field rule independently over the raw text.
func (e *RuleExtractor) Extract(programID int64, text string) models.RequirementRecord {
	return models.RequirementRecord{
		ProgramID:            programID,
		MinTOEFLScore:        parseTOEFL(text),
		MinIELTSScore:        parseIELTS(text),
		MinCambridgeScore:    parseCambridge(text),
		MinCGPA:              parseCGPA(text),
		CGPAScale:            parseCGPAScale(text),
		EnglishRequired:      parseEnglishRequired(text),
		WorkExperienceYears:  parseWorkExperience(text),
		AcceptedDegreeFields: parseAcceptedFields(text),
		RequirementTextRaw:   text,
		ParsingConfidence:    defaultConfidence,
	}
}

func parseTOEFL(text string) *int {
	if text == "" {
		return nil
	}
	for _, p := range toeflPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			score, err := strconv.Atoi(m[1])
			if err == nil && score >= minValidTOEFL && score <= maxValidTOEFL {
				return &score
			}
		}
	}
	return nil
}

func parseIELTS(text string) *float64 {
	if text == "" {
		return nil
	}
	for _, p := range ieltsPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			score, err := strconv.ParseFloat(m[1], 64)
			if err == nil && score >= 0 && score <= maxValidIELTS {
				return &score
			}
		}
	}
	return nil
}

func parseCambridge(text string) *string {
	if text == "" {
		return nil
	}
	for _, p := range cambridgePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			level := strings.ToUpper(m[1])
			return &level
		}
	}
	return nil
}

func parseCGPA(text string) *float64 {
	if text == "" {
		return nil
	}
	for _, p := range cgpaPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			score, err := strconv.ParseFloat(m[1], 64)
			if err == nil && score >= 0 && score <= maxValidCGPA {
				return &score
			}
		}
	}
	return nil
}

// parseCGPAScale defaults to the 4.0 scale unless the text names another one.
func parseCGPAScale(text string) float64 {
	low := strings.ToLower(text)
	switch {
	case strings.Contains(low, "/5") || strings.Contains(low, "out of 5") || strings.Contains(low, "scale of 5"):
		return 5.0
	case strings.Contains(low, "/10") || strings.Contains(low, "out of 10") || strings.Contains(low, "scale of 10"):
		return 10.0
	default:
		return 4.0
	}
}

func parseEnglishRequired(text string) bool {
	low := strings.ToLower(text)
	for _, k := range englishKeywords {
		if strings.Contains(low, k) {
			return true
		}
	}
	return false
}

func parseWorkExperience(text string) *int {
	if text == "" {
		return nil
	}
	for _, p := range experiencePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			years, err := strconv.Atoi(m[1])
			if err == nil && years >= 0 && years <= maxValidYears {
				return &years
			}
		}
	}
	return nil
}

func parseAcceptedFields(text string) *string {
	if text == "" {
		return nil
	}
	var fields []string
	for i, f := range fieldVocabulary {
		if fieldMatchers[i].MatchString(text) {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	joined := strings.Join(fields, ", ")
	return &joined
}
