// internal/report/pdf_test.go
package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sana-bil/Smart-Scholar/internal/common/logger"
	"github.com/sana-bil/Smart-Scholar/internal/models"
)

func TestRenderer_Render(t *testing.T) {
	ielts := 7.0
	profile := models.StudentProfile{
		CGPA:           3.6,
		CGPAScale:      4.0,
		Field:          "Computer Science",
		IELTS:          &ielts,
		WorkExperience: 2,
	}

	results := make([]models.MatchResult, 0, 20)
	for i := 0; i < 20; i++ {
		results = append(results, models.MatchResult{
			ProgramID:    int64(i + 1),
			ProgramName:  "European Masters Programme",
			OverallMatch: 100 - i,
			Status:       models.StatusStrong,
		})
	}

	renderer := NewRenderer(logger.NewTestLogger(t))
	data, err := renderer.Render(profile, results)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data[:5]), "%PDF-"))
	assert.Greater(t, len(data), 1000)
}

func TestRenderer_RenderEmptyResults(t *testing.T) {
	renderer := NewRenderer(logger.NewTestLogger(t))
	data, err := renderer.Render(models.StudentProfile{Field: "Physics", CGPAScale: 4.0}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "EMJMD Programme", displayName("EMJMD Programmeéü"))

	long := strings.Repeat("A", 100)
	truncated := displayName(long)
	assert.Len(t, truncated, 80)
	assert.True(t, strings.HasSuffix(truncated, ".."))
}

func TestEnglishScore(t *testing.T) {
	ielts := 6.5
	toefl := 95

	assert.Equal(t, "6.5", englishScore(models.StudentProfile{IELTS: &ielts}))
	assert.Equal(t, "95", englishScore(models.StudentProfile{TOEFL: &toefl}))
	assert.Equal(t, "C1", englishScore(models.StudentProfile{Cambridge: "C1"}))
	assert.Equal(t, "N/A", englishScore(models.StudentProfile{}))
}
