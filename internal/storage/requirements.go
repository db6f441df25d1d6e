// internal/storage/requirements.go
package storage

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/sana-bil/Smart-Scholar/internal/common/errors"
	"github.com/sana-bil/Smart-Scholar/internal/common/logger"
	"github.com/sana-bil/Smart-Scholar/internal/models"
)

const createRequirementsTable = `
CREATE TABLE program_requirements (
    program_id             BIGINT PRIMARY KEY,
    min_toefl_score        INTEGER,
    min_ielts_score        DOUBLE PRECISION,
    min_cambridge_score    TEXT,
    min_cgpa               DOUBLE PRECISION,
    cgpa_scale             DOUBLE PRECISION NOT NULL DEFAULT 4.0,
    english_required       BOOLEAN NOT NULL DEFAULT FALSE,
    work_experience_years  INTEGER,
    accepted_degree_fields TEXT,
    requirement_text_raw   TEXT NOT NULL,
    parsing_confidence     DOUBLE PRECISION NOT NULL DEFAULT 0
)`

// RequirementRepository owns the program_requirements table. The table is
// only ever written by a full offline re-extraction, so the single write
// operation is a replace: drop, recreate, batch insert.
type RequirementRepository struct {
	db  *sql.DB
	log logger.Logger
	sb  sq.StatementBuilderType
}

func NewRequirementRepository(db *sql.DB, log logger.Logger) *RequirementRepository {
	return &RequirementRepository{
		db:  db,
		log: log,
		sb:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ReplaceAll swaps the full requirement table for the given records inside
// one transaction. A failed run leaves the previous table intact.
func (r *RequirementRepository) ReplaceAll(ctx context.Context, records []models.RequirementRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewRequirementsReplaceFailedError(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS program_requirements"); err != nil {
		return errors.NewRequirementsReplaceFailedError(err)
	}
	if _, err := tx.ExecContext(ctx, createRequirementsTable); err != nil {
		return errors.NewRequirementsReplaceFailedError(err)
	}

	for _, rec := range records {
		query, args, err := r.sb.
			Insert("program_requirements").
			Columns("program_id", "min_toefl_score", "min_ielts_score", "min_cambridge_score",
				"min_cgpa", "cgpa_scale", "english_required", "work_experience_years",
				"accepted_degree_fields", "requirement_text_raw", "parsing_confidence").
			Values(rec.ProgramID, rec.MinTOEFLScore, rec.MinIELTSScore, rec.MinCambridgeScore,
				rec.MinCGPA, rec.CGPAScale, rec.EnglishRequired, rec.WorkExperienceYears,
				rec.AcceptedDegreeFields, rec.RequirementTextRaw, rec.ParsingConfidence).
			ToSql()
		if err != nil {
			return errors.NewRequirementsReplaceFailedError(err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.NewRequirementsReplaceFailedError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewRequirementsReplaceFailedError(err)
	}

	r.log.Info("replaced requirement table", map[string]interface{}{"rows": len(records)})
	return nil
}
