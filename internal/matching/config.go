// internal/matching/config.go
package matching

// Point allocations and similarity tiers for the composite score. These are
// the exact tunables a reviewer needs to reproduce a scoring run; both
// presets share them and differ only in the variant switches below.
const (
	FieldScoreMax      = 50
	CGPAScoreMax       = 25
	LanguageScoreMax   = 15
	ExperienceScoreMax = 5
	BonusScore         = 5

	// Tiered field score by cosine similarity of the cleaned field texts.
	SimilarityGate     = 0.28
	SimilarityTierMid  = 0.35
	SimilarityTierHigh = 0.45
	FieldScoreLow      = 30
	FieldScoreMid      = 42

	// Linear CGPA decay below the requirement, in points per full gap-point.
	CGPADecayPerGap = 10

	OverallMatchCap = 100

	StatusStrongMin    = 80
	StatusQualifiedMin = 60
)

// LanguageMode selects how the language sub-score combines the program's
// proficiency floors.
type LanguageMode int

const (
	// LanguageProportional awards floor(15 * hits/dimensions) across every
	// requirement dimension the program imposes.
	LanguageProportional LanguageMode = iota
	// LanguageFirstPresent checks IELTS first, then TOEFL, awarding the full
	// 15 on the first dimension the student can be checked against.
	LanguageFirstPresent
)

// ScoringConfig holds the variant switches for one scoring engine instance.
type ScoringConfig struct {
	Name         string
	LanguageMode LanguageMode
	CGPAGapFloor int
}

// StrictPreset is the canonical engine behavior: proportional language
// scoring and a CGPA decay that never drops below 5 points.
func StrictPreset() ScoringConfig {
	return ScoringConfig{
		Name:         "strict",
		LanguageMode: LanguageProportional,
		CGPAGapFloor: 5,
	}
}

// LenientPreset reproduces the earlier engine revision: first-present-wins
// language scoring and a CGPA decay floored at zero.
func LenientPreset() ScoringConfig {
	return ScoringConfig{
		Name:         "lenient",
		LanguageMode: LanguageFirstPresent,
		CGPAGapFloor: 0,
	}
}

// PresetByName resolves a configured preset name, defaulting to strict.
func PresetByName(name string) ScoringConfig {
	if name == "lenient" {
		return LenientPreset()
	}
	return StrictPreset()
}
