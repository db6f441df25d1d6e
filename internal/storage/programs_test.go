// internal/storage/programs_test.go
package storage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sana-bil/Smart-Scholar/internal/common/logger"
)

var programColumns = []string{
	"program_id", "program_name", "acronym", "field", "consortium",
	"website", "scholarship", "application_deadline", "requirement_text_raw",
}

var joinedColumns = []string{
	"program_id", "program_name", "acronym", "field", "consortium",
	"website", "scholarship", "application_deadline",
	"min_toefl_score", "min_ielts_score", "min_cambridge_score",
	"min_cgpa", "cgpa_scale", "english_required",
	"work_experience_years", "accepted_degree_fields",
	"requirement_text_raw", "parsing_confidence",
}

func TestProgramRepository_ListPrograms(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(programColumns).
		AddRow(1, "European Masters in Computer Science", "EMCS", "Computer Science",
			"TU Delft, KTH", "https://emcs.example.eu", "Erasmus Mundus", "2026-01-15",
			"IELTS 6.5 required, GPA 3.0/4.0").
		AddRow(2, "MSc Environmental Policy", nil, nil, nil, nil, nil, nil, nil)

	mock.ExpectQuery(`SELECT program_id, program_name, .+ FROM programs ORDER BY program_id`).
		WillReturnRows(rows)

	repo := NewProgramRepository(db, logger.NewTestLogger(t))
	programs, err := repo.ListPrograms(context.Background())
	require.NoError(t, err)
	require.Len(t, programs, 2)

	assert.Equal(t, int64(1), programs[0].ProgramID)
	assert.Equal(t, "EMCS", programs[0].Acronym)
	assert.Equal(t, "IELTS 6.5 required, GPA 3.0/4.0", programs[0].RequirementTextRaw)

	// NULL columns come back as empty strings, not errors.
	assert.Equal(t, "MSc Environmental Policy", programs[1].ProgramName)
	assert.Empty(t, programs[1].Field)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgramRepository_ListWithRequirements(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(joinedColumns).
		AddRow(1, "European Masters in Computer Science", "EMCS", "Computer Science",
			"TU Delft, KTH", "https://emcs.example.eu", "Erasmus Mundus", "2026-01-15",
			nil, 6.5, nil, 3.0, 4.0, true, 2, "Computer Science, Mathematics",
			"IELTS 6.5 required, GPA 3.0/4.0", 0.85).
		AddRow(2, "MSc Environmental Policy", nil, "Environmental Science", nil, nil, nil, nil,
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)

	mock.ExpectQuery(`SELECT p.program_id, .+ FROM programs p LEFT JOIN program_requirements r ON r.program_id = p.program_id ORDER BY p.program_id`).
		WillReturnRows(rows)

	repo := NewProgramRepository(db, logger.NewTestLogger(t))
	result, err := repo.ListWithRequirements(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)

	first := result[0]
	require.NotNil(t, first.Requirements)
	assert.Nil(t, first.Requirements.MinTOEFLScore)
	require.NotNil(t, first.Requirements.MinIELTSScore)
	assert.InDelta(t, 6.5, *first.Requirements.MinIELTSScore, 1e-9)
	require.NotNil(t, first.Requirements.MinCGPA)
	assert.InDelta(t, 3.0, *first.Requirements.MinCGPA, 1e-9)
	assert.Equal(t, 4.0, first.Requirements.CGPAScale)
	assert.True(t, first.Requirements.EnglishRequired)
	require.NotNil(t, first.Requirements.WorkExperienceYears)
	assert.Equal(t, 2, *first.Requirements.WorkExperienceYears)
	assert.Equal(t, 0.85, first.Requirements.ParsingConfidence)

	// Program without a requirement row yields nil Requirements.
	assert.Nil(t, result[1].Requirements)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgramRepository_ListByField(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(joinedColumns).
		AddRow(1, "European Masters in Computer Science", "EMCS", "Computer Science",
			nil, nil, nil, nil,
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)

	mock.ExpectQuery(`SELECT p.program_id, .+ FROM programs p LEFT JOIN program_requirements r ON r.program_id = p.program_id WHERE p.field ILIKE \$1 ORDER BY p.program_id`).
		WithArgs("%Computer%").
		WillReturnRows(rows)

	repo := NewProgramRepository(db, logger.NewTestLogger(t))
	result, err := repo.ListByField(context.Background(), "Computer")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Computer Science", result[0].Program.Field)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgramRepository_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT program_id, .+ FROM programs`).
		WillReturnError(assert.AnError)

	repo := NewProgramRepository(db, logger.NewTestLogger(t))
	_, err = repo.ListPrograms(context.Background())
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
