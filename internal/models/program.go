// internal/models/program.go
package models

// ProgramRecord is one persisted academic program from the catalog.
// Owned by storage; read-only to the matching engine.
type ProgramRecord struct {
	ProgramID           int64  `json:"program_id" db:"program_id"`
	ProgramName         string `json:"program_name" db:"program_name"`
	Acronym             string `json:"acronym" db:"acronym"`
	Field               string `json:"field" db:"field"`
	Consortium          string `json:"consortium" db:"consortium"`
	Website             string `json:"website" db:"website"`
	Scholarship         string `json:"scholarship" db:"scholarship"`
	ApplicationDeadline string `json:"application_deadline" db:"application_deadline"`
	RequirementTextRaw  string `json:"requirement_text_raw,omitempty" db:"requirement_text_raw"`
}

// FieldOrName returns the program's field text, falling back to the program
// name when no field text was captured during ingestion.
func (p *ProgramRecord) FieldOrName() string {
	if p.Field != "" {
		return p.Field
	}
	return p.ProgramName
}

// ProgramWithRequirements is one catalog row as consumed by the scorer:
// the program joined with its optional requirement record.
type ProgramWithRequirements struct {
	Program      ProgramRecord      `json:"program"`
	Requirements *RequirementRecord `json:"requirements,omitempty"`
}
