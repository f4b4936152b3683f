package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

const defaultTitle = "Heizlastberechnung"

// WritePDF renders a one-page A4 summary.
func WritePDF(w io.Writer, exp heatload.Export, meta Meta) error {
	title := meta.Title
	if title == "" {
		title = defaultTitle
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate UTF-8 units like m² and °.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if meta.BuildingID != "" {
		pdf.Cell(0, 6, tr("Building: "+meta.BuildingID))
		pdf.Ln(6)
	}
	if meta.Preset != "" {
		pdf.Cell(0, 6, tr("Preset: "+meta.Preset))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Total heating load: %.2f kW", exp.Results.Total)))
	pdf.Ln(10)

	section := ""
	for _, r := range exportRows(exp) {
		if r.Section != section {
			section = r.Section
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 11)
			pdf.Cell(0, 7, section)
			pdf.Ln(7)
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(70, 6, r.Key, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, pdfValue(r.Value), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, tr(r.Unit), "", 1, "L", false, 0, "")
	}

	if len(meta.Advisories) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, "Recommendations")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 10)
		for _, a := range meta.Advisories {
			pdf.MultiCell(0, 6, tr("- "+a.Message()), "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func pdfValue(v any) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.3f", f)
	}
	return formatValue(v)
}
