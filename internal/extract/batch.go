// internal/extract/batch.go
package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	commonerrors "github.com/sana-bil/Smart-Scholar/internal/common/errors"
	"github.com/sana-bil/Smart-Scholar/internal/common/logger"
	"github.com/sana-bil/Smart-Scholar/internal/common/metrics"
	"github.com/sana-bil/Smart-Scholar/internal/models"
)

// RequirementWriter is the storage write interface consumed by the offline
// pass: a full replace of the requirement table followed by a batch insert.
type RequirementWriter interface {
	ReplaceAll(ctx context.Context, records []models.RequirementRecord) error
}

// BatchSummary describes one extraction pass over the catalog.
type BatchSummary struct {
	BatchID  string
	Total    int
	Parsed   int
	Skipped  int
	Duration time.Duration
}

// Runner executes a full extraction pass: parse every catalog row, skip and
// log rows that fail, then replace the requirement table in one write. The
// pass is idempotent at the granularity of a full re-run.
type Runner struct {
	extractor Extractor
	writer    RequirementWriter
	logger    logger.Logger
}

func NewRunner(extractor Extractor, writer RequirementWriter, log logger.Logger) *Runner {
	return &Runner{
		extractor: extractor,
		writer:    writer,
		logger:    log.WithFields(map[string]interface{}{"component": "extraction-runner"}),
	}
}

// Run parses requirement text for every program and replaces the stored
// requirement records. A failure in one row never aborts the batch; the row
// is logged with its program id and skipped.
func (r *Runner) Run(ctx context.Context, programs []models.ProgramRecord) (BatchSummary, error) {
	summary := BatchSummary{
		BatchID: uuid.NewString(),
		Total:   len(programs),
	}
	start := time.Now()

	r.logger.Info("starting extraction pass", map[string]interface{}{
		"batchId":  summary.BatchID,
		"programs": summary.Total,
	})

	records := make([]models.RequirementRecord, 0, len(programs))
	for _, p := range programs {
		rec, err := r.extractOne(p)
		if err != nil {
			summary.Skipped++
			metrics.ExtractionRowsFailed.Inc()
			r.logger.Error("requirement row skipped", map[string]interface{}{
				"batchId":   summary.BatchID,
				"programId": p.ProgramID,
				"error":     err.Error(),
			})
			continue
		}
		records = append(records, rec)
		summary.Parsed++
		metrics.ExtractionRowsParsed.Inc()
	}

	if err := r.writer.ReplaceAll(ctx, records); err != nil {
		return summary, commonerrors.NewRequirementsReplaceFailedError(err)
	}

	summary.Duration = time.Since(start)
	r.logger.Info("extraction pass complete", map[string]interface{}{
		"batchId":  summary.BatchID,
		"parsed":   summary.Parsed,
		"skipped":  summary.Skipped,
		"duration": summary.Duration.String(),
	})
	return summary, nil
}

// extractOne guards a single row: an unexpected panic in a field rule is
// converted to a per-row error so the batch continues.
func (r *Runner) extractOne(p models.ProgramRecord) (rec models.RequirementRecord, err error) {
	defer func() {
		if rv := recover(); rv != nil {
			err = commonerrors.NewExtractionRowFailedError(p.ProgramID, fmt.Errorf("panic: %v", rv))
		}
	}()
	return r.extractor.Extract(p.ProgramID, p.RequirementTextRaw), nil
}
