package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/cutlist/internal/locale"
	"github.com/piwi3910/cutlist/internal/report"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 10.0
	rowHeight    = 6.0
)

// colWidths are the piece table column widths; they add up to the printable width.
var colWidths = []float64{14, 56, 14, 22, 22, 22, 30}

// ExportPDF writes the cutlist as a PDF: a title page header, then one
// table per group listing its numbered pieces.
func ExportPDF(path string, r report.Report, loc *locale.Localizer) error {
	if len(r.Groups) == 0 {
		return fmt.Errorf("no groups to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	y := renderTitle(pdf, tr, r, loc)

	for _, g := range r.Groups {
		// Keep a group heading with at least its table header and first row.
		if y+headerHeight+2*rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
		}
		y = renderGroup(pdf, tr, r, g, y, loc)
		y += 6
	}

	renderFooter(pdf, tr, r)
	return pdf.OutputFileAndClose(path)
}

// renderTitle draws the document title and any report errors; it returns the next free y.
func renderTitle(pdf *fpdf.Fpdf, tr func(string) string, r report.Report, loc *locale.Localizer) float64 {
	title := loc.Text(locale.CutlistTitle)
	if r.SourceName != "" {
		title += ": " + r.SourceName
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, tr(title), "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+headerHeight+1, pageWidth-marginRight, marginTop+headerHeight+1)
	y := marginTop + headerHeight + 5

	if len(r.Errors) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(200, 0, 0)
		for _, e := range r.Errors {
			pdf.SetXY(marginLeft, y)
			pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, tr(e), "", 0, "L", false, 0, "")
			y += 5
		}
		pdf.SetTextColor(0, 0, 0)
		y += 3
	}
	return y
}

// renderGroup draws one group heading and its piece table starting at y,
// continuing on new pages as needed; it returns the next free y.
func renderGroup(pdf *fpdf.Fpdf, tr func(string) string, r report.Report, g report.Group, y float64, loc *locale.Localizer) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	if g.RawThicknessAvailable {
		pdf.SetTextColor(0, 0, 0)
	} else {
		pdf.SetTextColor(180, 90, 0)
	}
	pdf.SetXY(marginLeft, y)
	heading := fmt.Sprintf("%s: %s", loc.Text(locale.HeaderMaterial), groupTitle(g, r.LengthUnit, loc))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 7, tr(heading), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	y += 8

	headers := pieceHeaders(loc)
	y = renderTableHeader(pdf, tr, headers, y)

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range g.Pieces {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = renderTableHeader(pdf, tr, headers, marginTop)
			pdf.SetFont("Helvetica", "", 9)
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x := marginLeft
		for j, cell := range pieceRow(p) {
			align := "C"
			if j == 1 {
				align = "L"
			}
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], rowHeight, tr(truncate(pdf, cell, colWidths[j]-2)), "1", 0, align, true, 0, "")
			x += colWidths[j]
		}
		y += rowHeight
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(90, 90, 90)
	pdf.SetXY(marginLeft, y+1)
	summary := fmt.Sprintf("%s: %d | %.3f m² | %.4f m³ | %.2f bd ft",
		loc.Text(locale.HeaderCount), g.PieceCount, g.Estimate.TotalAreaM2, g.Estimate.TotalVolumeM3, g.Estimate.TotalBoardFeet)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, tr(summary), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return y + 5
}

func renderTableHeader(pdf *fpdf.Fpdf, tr func(string) string, headers []string, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], rowHeight, tr(h), "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	return y + rowHeight
}

// renderFooter prints the piece total at the bottom of the last page.
func renderFooter(pdf *fpdf.Fpdf, tr func(string) string, r report.Report) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	text := fmt.Sprintf("%d groups, %d parts", len(r.Groups), r.TotalPieceCount())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, tr(text), "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// truncate shortens s with an ellipsis until it fits in width at the current font.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
