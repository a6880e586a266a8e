// Package report serializes a scored session into its two portable
// artifacts: the canonical JSON record and a paginated PDF synthesis.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/everinsight/discprofile/internal/model"
)

// placeholder substitutes an empty reflection block in the PDF.
const placeholder = "(non renseigné)"

// BuildPDF produces the single-file synthesis document: header with
// the respondent key, raw score line, strengths, excess risks,
// development areas, the two free-text reflection blocks, and the
// radial chart when provided (nil skips it). Characters outside the
// PDF's code page are substituted rather than failing the export.
func BuildPDF(key string, v model.ScoreVector, narr model.NarrativeSections, refl model.Reflections, chartPNG []byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; the translator drops or substitutes
	// anything the code page cannot carry instead of erroring out.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := func(text string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, tr(text), "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 11)
	}
	para := func(text string) {
		pdf.MultiCell(0, 6, tr(text), "", "", false)
	}
	lines := func(ls []model.NarrativeLine) {
		for _, l := range ls {
			para(fmt.Sprintf("- %s (%s) : %s", l.Name, l.Dim, l.Text))
		}
	}

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("Profil DISC - Synthèse personnelle"), "", 1, "", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, tr("Email : "+key), "", 1, "", false, 0, "")
	pdf.Ln(2)

	title("Scores détaillés :")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("D : %d, I : %d, S : %d, C : %d", v.D, v.I, v.S, v.C)), "", 1, "", false, 0, "")
	pdf.Ln(4)

	if narr.Identity != "" {
		para(narr.Identity)
		pdf.Ln(2)
	}

	title("Vos points forts naturels :")
	lines(narr.Strengths)
	pdf.Ln(2)

	title("Axes de réflexion pour progresser :")
	para("Utiliser vos forces sans tomber dans leurs excès :")
	lines(narr.Excesses)
	pdf.Ln(1)
	para("Développer davantage vos énergies moins naturelles :")
	lines(narr.Development)
	pdf.Ln(2)

	if len(chartPNG) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("disc-radar", opts, bytes.NewReader(chartPNG))
		pdf.ImageOptions("disc-radar", 55, pdf.GetY(), 100, 0, true, opts, 0, "")
		pdf.Ln(2)
	}

	title("Plan d'action - Situation réussie :")
	para(orPlaceholder(refl.Success))
	pdf.Ln(1)

	title("Plan d'action - Situation difficile :")
	para(orPlaceholder(refl.Difficult))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
