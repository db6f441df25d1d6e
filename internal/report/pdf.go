// internal/report/pdf.go
package report

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/go-pdf/fpdf"

	"github.com/sana-bil/Smart-Scholar/internal/common/errors"
	"github.com/sana-bil/Smart-Scholar/internal/common/logger"
	"github.com/sana-bil/Smart-Scholar/internal/models"
)

// maxTableRows keeps the ranked table on a single A4 page.
const maxTableRows = 15

const maxNameWidth = 78

var nonASCII = regexp.MustCompile(`[^\x00-\x7F]+`)

// Renderer produces the one-page eligibility report: a header bar, the
// candidate profile summary and the ranked compatibility table.
type Renderer struct {
	log logger.Logger
}

func NewRenderer(log logger.Logger) *Renderer {
	return &Renderer{log: log}
}

// Render builds the PDF for an already-ranked result list. Result order is
// taken as-is; ranking happens upstream.
func (r *Renderer) Render(profile models.StudentProfile, results []models.MatchResult) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 5, 10)
	pdf.AddPage()

	// Header bar.
	pdf.SetFillColor(20, 40, 80)
	pdf.Rect(0, 0, 210, 30, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetY(8)
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 8, "SmartScholar Eligibility Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, "Official Erasmus Mundus Compatibility Assessment", "", 1, "C", false, 0, "")

	// Profile summary.
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(32)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, "CANDIDATE PROFILE SUMMARY", "", 1, "L", false, 0, "")
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(1)

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(95, 6, fmt.Sprintf("Major Field: %s", profile.Field), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, fmt.Sprintf("CGPA: %.2f / %.1f", profile.CGPA, profile.CGPAScale), "", 1, "L", false, 0, "")
	pdf.CellFormat(95, 6, fmt.Sprintf("English Score: %s", englishScore(profile)), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, fmt.Sprintf("Work Experience: %d Years", profile.WorkExperience), "", 1, "L", false, 0, "")

	// Ranked table.
	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, "PROGRAM COMPATIBILITY RANKING", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 235, 245)
	pdf.CellFormat(12, 9, "Rank", "1", 0, "C", true, 0, "")
	pdf.CellFormat(123, 9, " Program Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 9, "Match Index", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 9, "Standing", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 8)
	rows := results
	if len(rows) > maxTableRows {
		rows = rows[:maxTableRows]
	}
	for i, res := range rows {
		pdf.CellFormat(12, 8, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(123, 8, " "+displayName(res.ProgramName), "1", 0, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 8)
		pdf.CellFormat(25, 8, fmt.Sprintf("%d%%", res.OverallMatch), "1", 0, "C", false, 0, "")

		red, green, blue := standingColor(res.Status)
		pdf.SetTextColor(red, green, blue)
		pdf.CellFormat(30, 8, res.Status.StandingLabel(), "1", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "", 8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		r.log.WithError(err).Error("eligibility report rendering failed", nil)
		return nil, errors.NewReportRenderFailedError(err)
	}
	return buf.Bytes(), nil
}

// displayName strips the non-latin characters the core font cannot encode
// and truncates to the table column width.
func displayName(name string) string {
	clean := nonASCII.ReplaceAllString(name, "")
	if len(clean) > maxNameWidth {
		return clean[:maxNameWidth] + ".."
	}
	return clean
}

func englishScore(profile models.StudentProfile) string {
	switch {
	case profile.IELTS != nil:
		return fmt.Sprintf("%.1f", *profile.IELTS)
	case profile.TOEFL != nil:
		return fmt.Sprintf("%d", *profile.TOEFL)
	case profile.Cambridge != "":
		return profile.Cambridge
	default:
		return "N/A"
	}
}

func standingColor(status models.MatchStatus) (int, int, int) {
	switch status {
	case models.StatusStrong:
		return 0, 100, 0
	case models.StatusQualified:
		return 180, 120, 0
	default:
		return 150, 0, 0
	}
}
