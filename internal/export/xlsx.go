package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/cutlist/internal/locale"
	"github.com/piwi3910/cutlist/internal/report"
)

// ExportXLSX writes the cutlist as an Excel workbook. The first sheet lists
// every piece under its group; the second summarizes stock per group.
func ExportXLSX(path string, r report.Report, loc *locale.Localizer) error {
	f := excelize.NewFile()
	defer f.Close()

	pieces := loc.Text(locale.CutlistTitle)
	if err := f.SetSheetName(f.GetSheetName(0), pieces); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	summary := loc.Text(locale.SummaryTitle)
	if _, err := f.NewSheet(summary); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	header := append([]string{loc.Text(locale.HeaderMaterial)}, pieceHeaders(loc)...)
	if err := writeRow(f, pieces, 1, toCells(header)); err != nil {
		return err
	}
	if err := styleRow(f, pieces, 1, len(header), bold); err != nil {
		return err
	}

	row := 2
	for _, g := range r.Groups {
		title := groupTitle(g, r.LengthUnit, loc)
		for _, p := range g.Pieces {
			cells := []interface{}{title, p.Number, p.Name, p.Count, p.Size.Length, p.Size.Width, p.Size.Thickness, formatSize(p.RawSize)}
			if err := writeRow(f, pieces, row, cells); err != nil {
				return err
			}
			row++
		}
	}
	if err := f.SetColWidth(pieces, "A", "A", 28); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(pieces, "C", "C", 24); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	sumHeader := []interface{}{
		loc.Text(locale.HeaderMaterial),
		loc.Text(locale.HeaderThickness) + " (" + r.LengthUnit + ")",
		loc.Text(locale.HeaderCount),
		"m²", "m³", "bd ft",
	}
	if err := writeRow(f, summary, 1, sumHeader); err != nil {
		return err
	}
	if err := styleRow(f, summary, 1, len(sumHeader), bold); err != nil {
		return err
	}
	for i, g := range r.Groups {
		cells := []interface{}{
			g.MaterialName, g.RawThickness, g.PieceCount,
			g.Estimate.TotalAreaM2, g.Estimate.TotalVolumeM3, g.Estimate.TotalBoardFeet,
		}
		if err := writeRow(f, summary, i+2, cells); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	ref, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, ref, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}
