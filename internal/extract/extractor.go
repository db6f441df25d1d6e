// internal/extract/extractor.go

// Package extract turns unstructured eligibility text into structured
// requirement records. Extraction is a bounded best-effort annotator over a
// fixed vocabulary: each field rule is independent and tolerant, and the
// absence of a pattern match yields an absent value, never an error.
package extract

import (
	"github.com/sana-bil/Smart-Scholar/internal/models"
)

// Extractor parses one program's raw eligibility text into a requirement
// record. Implementations must be deterministic: identical text always
// yields an identical record.
type Extractor interface {
	Extract(programID int64, text string) models.RequirementRecord
}
