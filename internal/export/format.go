// Package export renders a cutlist report to printable and spreadsheet
// formats: a PDF cutlist, QR-coded piece labels and an Excel workbook.
package export

import (
	"fmt"
	"math"
	"strconv"

	"github.com/piwi3910/cutlist/internal/locale"
	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/report"
)

// formatLength renders a length with at most two decimals.
func formatLength(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// formatSize renders a size as "L x W x T".
func formatSize(s model.Size) string {
	return fmt.Sprintf("%s x %s x %s", formatLength(s.Length), formatLength(s.Width), formatLength(s.Thickness))
}

// groupTitle renders the heading of a group, e.g. "Oak, 18 mm".
func groupTitle(g report.Group, unit string, loc *locale.Localizer) string {
	title := fmt.Sprintf("%s, %s %s", g.MaterialName, formatLength(g.RawThickness), unit)
	if !g.RawThicknessAvailable {
		title += " (" + loc.Text(locale.NonStandardThickness) + ")"
	}
	return title
}

// pieceHeaders returns the localized column headers of a piece table.
func pieceHeaders(loc *locale.Localizer) []string {
	return []string{
		loc.Text(locale.HeaderNumber),
		loc.Text(locale.HeaderName),
		loc.Text(locale.HeaderCount),
		loc.Text(locale.HeaderLength),
		loc.Text(locale.HeaderWidth),
		loc.Text(locale.HeaderThickness),
		loc.Text(locale.HeaderRawSize),
	}
}

// pieceRow returns the cells of a piece table row. Length, width and
// thickness are the part's geometry; the raw size follows.
func pieceRow(p report.Piece) []string {
	return []string{
		p.Number,
		p.Name,
		strconv.Itoa(p.Count),
		formatLength(p.Size.Length),
		formatLength(p.Size.Width),
		formatLength(p.Size.Thickness),
		formatSize(p.RawSize),
	}
}
