// internal/storage/programs.go
package storage

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/sana-bil/Smart-Scholar/internal/common/errors"
	"github.com/sana-bil/Smart-Scholar/internal/common/logger"
	"github.com/sana-bil/Smart-Scholar/internal/models"
)

// ProgramRepository reads the program catalog. The matching engine only
// consumes rows from it; program data is never written here.
type ProgramRepository struct {
	db  *sql.DB
	log logger.Logger
	sb  sq.StatementBuilderType
}

func NewProgramRepository(db *sql.DB, log logger.Logger) *ProgramRepository {
	return &ProgramRepository{
		db:  db,
		log: log,
		sb:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListPrograms returns every program row with its raw requirement text,
// ordered by program id. The offline extractor consumes this view.
func (r *ProgramRepository) ListPrograms(ctx context.Context) ([]models.ProgramRecord, error) {
	query, args, err := r.sb.
		Select("program_id", "program_name", "acronym", "field", "consortium",
			"website", "scholarship", "application_deadline", "requirement_text_raw").
		From("programs").
		OrderBy("program_id").
		ToSql()
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_programs", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_programs", err)
	}
	defer rows.Close()

	var programs []models.ProgramRecord
	for rows.Next() {
		var p models.ProgramRecord
		var acronym, field, consortium, website, scholarship, deadline, reqText sql.NullString
		if err := rows.Scan(&p.ProgramID, &p.ProgramName, &acronym, &field, &consortium,
			&website, &scholarship, &deadline, &reqText); err != nil {
			return nil, errors.NewQueryExecutionFailedError("list_programs", err)
		}
		p.Acronym = acronym.String
		p.Field = field.String
		p.Consortium = consortium.String
		p.Website = website.String
		p.Scholarship = scholarship.String
		p.ApplicationDeadline = deadline.String
		p.RequirementTextRaw = reqText.String
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_programs", err)
	}
	return programs, nil
}

// ListWithRequirements returns the full catalog joined with its optional
// requirement record, ordered by program id. This is the scorer's input.
func (r *ProgramRepository) ListWithRequirements(ctx context.Context) ([]models.ProgramWithRequirements, error) {
	return r.listWithRequirements(ctx, nil)
}

// ListByField restricts the joined catalog to programs whose field text
// contains the given fragment, case-insensitively.
func (r *ProgramRepository) ListByField(ctx context.Context, fieldFragment string) ([]models.ProgramWithRequirements, error) {
	filter := sq.ILike{"p.field": "%" + fieldFragment + "%"}
	return r.listWithRequirements(ctx, filter)
}

func (r *ProgramRepository) listWithRequirements(ctx context.Context, filter sq.Sqlizer) ([]models.ProgramWithRequirements, error) {
	builder := r.sb.
		Select("p.program_id", "p.program_name", "p.acronym", "p.field", "p.consortium",
			"p.website", "p.scholarship", "p.application_deadline",
			"r.min_toefl_score", "r.min_ielts_score", "r.min_cambridge_score",
			"r.min_cgpa", "r.cgpa_scale", "r.english_required",
			"r.work_experience_years", "r.accepted_degree_fields",
			"r.requirement_text_raw", "r.parsing_confidence").
		From("programs p").
		LeftJoin("program_requirements r ON r.program_id = p.program_id").
		OrderBy("p.program_id")
	if filter != nil {
		builder = builder.Where(filter)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_programs_with_requirements", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_programs_with_requirements", err)
	}
	defer rows.Close()

	var result []models.ProgramWithRequirements
	for rows.Next() {
		row, err := scanProgramWithRequirements(rows)
		if err != nil {
			return nil, errors.NewQueryExecutionFailedError("list_programs_with_requirements", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_programs_with_requirements", err)
	}
	return result, nil
}

// scanProgramWithRequirements maps one joined row, translating SQL NULLs
// into the absent-value pointer semantics of RequirementRecord. A program
// with no requirement row at all yields a nil Requirements.
func scanProgramWithRequirements(rows *sql.Rows) (models.ProgramWithRequirements, error) {
	var (
		row models.ProgramWithRequirements

		acronym, field, consortium, website, scholarship, deadline sql.NullString

		minTOEFL        sql.NullInt64
		minIELTS        sql.NullFloat64
		minCambridge    sql.NullString
		minCGPA         sql.NullFloat64
		cgpaScale       sql.NullFloat64
		englishRequired sql.NullBool
		workExperience  sql.NullInt64
		acceptedFields  sql.NullString
		reqText         sql.NullString
		confidence      sql.NullFloat64
	)

	err := rows.Scan(&row.Program.ProgramID, &row.Program.ProgramName, &acronym, &field,
		&consortium, &website, &scholarship, &deadline,
		&minTOEFL, &minIELTS, &minCambridge, &minCGPA, &cgpaScale,
		&englishRequired, &workExperience, &acceptedFields, &reqText, &confidence)
	if err != nil {
		return row, err
	}

	row.Program.Acronym = acronym.String
	row.Program.Field = field.String
	row.Program.Consortium = consortium.String
	row.Program.Website = website.String
	row.Program.Scholarship = scholarship.String
	row.Program.ApplicationDeadline = deadline.String

	// No joined requirement row: every requirement column is NULL,
	// including the always-populated scale and confidence.
	if !cgpaScale.Valid && !confidence.Valid && !reqText.Valid {
		return row, nil
	}

	req := &models.RequirementRecord{
		ProgramID:          row.Program.ProgramID,
		CGPAScale:          cgpaScale.Float64,
		EnglishRequired:    englishRequired.Bool,
		RequirementTextRaw: reqText.String,
		ParsingConfidence:  confidence.Float64,
	}
	if minTOEFL.Valid {
		v := int(minTOEFL.Int64)
		req.MinTOEFLScore = &v
	}
	if minIELTS.Valid {
		v := minIELTS.Float64
		req.MinIELTSScore = &v
	}
	if minCambridge.Valid {
		v := minCambridge.String
		req.MinCambridgeScore = &v
	}
	if minCGPA.Valid {
		v := minCGPA.Float64
		req.MinCGPA = &v
	}
	if workExperience.Valid {
		v := int(workExperience.Int64)
		req.WorkExperienceYears = &v
	}
	if acceptedFields.Valid {
		v := acceptedFields.String
		req.AcceptedDegreeFields = &v
	}
	row.Requirements = req
	return row, nil
}
