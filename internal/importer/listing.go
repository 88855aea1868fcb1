package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/scene"
)

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name      int
	Length    int
	Width     int
	Thickness int
	Quantity  int
	Material  int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":      {"name", "label", "part", "part name", "description", "desc", "piece", "item", "component"},
	"length":    {"length", "len", "l", "x"},
	"width":     {"width", "w", "y"},
	"thickness": {"thickness", "thick", "th", "t", "depth", "d", "z"},
	"quantity":  {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"material":  {"material", "mat", "stock", "wood", "species"},
}

// positionalMapping is used when the first row is not a header:
// Name, Length, Width, Thickness, Quantity, Material.
var positionalMapping = ColumnMapping{Name: 0, Length: 1, Width: 2, Thickness: 3, Quantity: 4, Material: 5}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching is case-insensitive against the known aliases of each role.
// Returns the mapping and true if a header was detected, or the positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Name: -1, Length: -1, Width: -1, Thickness: -1, Quantity: -1, Material: -1}
	slots := map[string]*int{
		"name":      &mapping.Name,
		"length":    &mapping.Length,
		"width":     &mapping.Width,
		"thickness": &mapping.Thickness,
		"quantity":  &mapping.Quantity,
		"material":  &mapping.Material,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// listingRow is one parsed line of a part listing.
type listingRow struct {
	name     string
	size     model.Size
	quantity int
	material string
}

func parseDimension(row []string, idx int, rowLabel, column string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, column)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, column, s)
	}
	if v <= 0 {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, strings.ToUpper(column[:1])+column[1:])
	}
	return v, ""
}

// parseRow extracts a listing row using the given column mapping.
// Returns the row and an error message, empty on success.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, partCount int) (listingRow, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Part %d", partCount+1)
	}

	var r listingRow
	var msg string
	r.name = name
	if r.size.Length, msg = parseDimension(row, mapping.Length, rowLabel, "length"); msg != "" {
		return r, msg
	}
	if r.size.Width, msg = parseDimension(row, mapping.Width, rowLabel, "width"); msg != "" {
		return r, msg
	}
	if r.size.Thickness, msg = parseDimension(row, mapping.Thickness, rowLabel, "thickness"); msg != "" {
		return r, msg
	}

	r.quantity = 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return r, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr)
		}
		if qty <= 0 {
			return r, fmt.Sprintf("%s: Quantity must be positive", rowLabel)
		}
		r.quantity = qty
	}

	r.material = getCell(row, mapping.Material)
	return r, ""
}

// ImportCSV imports a part listing from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string, unit model.LengthUnit) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", path, unit, result.Warnings)
}

// ImportCSVFromReader imports a part listing from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, unit model.LengthUnit) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", "", unit, nil)
}

// ImportExcel imports a part listing from the first sheet of an Excel workbook.
func ImportExcel(path string, unit model.LengthUnit) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", path, unit, nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
// Every valid row becomes a box definition placed quantity times in the active root.
func importFromRows(rows [][]string, rowPrefix, path string, unit model.LengthUnit, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Thickness == -1 {
			missing = append(missing, "Thickness")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	snap := &scene.Snapshot{Path: path, LengthUnit: unit, Active: []scene.Node{}}
	seen := map[string]int{}
	parts := 0

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		r, errMsg := parseRow(row, mapping, rowLabel, parts)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}

		seen[r.name]++
		if n := seen[r.name]; n > 1 {
			renamed := fmt.Sprintf("%s (%d)", r.name, n)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: Duplicate name '%s', renamed to '%s'", rowLabel, r.name, renamed))
			r.name = renamed
		}

		def := &scene.Definition{
			Name:  r.name,
			Faces: scene.BoxFaces(r.size.Length, r.size.Width, r.size.Thickness),
		}
		bounds := def.FacesExtent()
		for q := 0; q < r.quantity; q++ {
			snap.Active = append(snap.Active, &scene.Instance{
				Attributes: scene.Attributes{
					InstanceID: newInstanceID(),
					Material:   materialNamed(r.material, ""),
				},
				Bounds:     bounds,
				Definition: def,
			})
		}
		parts++
	}

	result.Snapshot = snap
	return result
}
