package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidThickness is returned when a standard thickness token is not a
// non-negative number.
var ErrInvalidThickness = errors.New("invalid standard thickness")

// StdThicknessTable is an ascending list of purchasable stock thicknesses
// expressed in the host length unit.
type StdThicknessTable []float64

// ThicknessMatch is the result of snapping a thickness to a StdThicknessTable.
type ThicknessMatch struct {
	Available bool    `json:"available"` // A table entry was found
	Value     float64 `json:"value"`     // The entry, or the requested thickness when unavailable
}

// ParseStdThicknesses parses a ";"-separated list of millimeter values into a
// table expressed in unit. Blank tokens are skipped; any other token that is not
// a non-negative number aborts the whole parse.
func ParseStdThicknesses(s string, unit LengthUnit) (StdThicknessTable, error) {
	table := StdThicknessTable{}
	for _, token := range strings.Split(s, ";") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		token = strings.TrimSuffix(token, "mm")
		mm, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
		if err != nil || mm < 0 || math.IsNaN(mm) || math.IsInf(mm, 0) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidThickness, token)
		}
		table = append(table, unit.FromMillimeters(mm))
	}
	sort.Float64s(table)
	return table.dedupe(), nil
}

func (t StdThicknessTable) dedupe() StdThicknessTable {
	if len(t) < 2 {
		return t
	}
	out := t[:1]
	for _, v := range t[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// Lookup returns the smallest table entry greater than or equal to thickness.
// When none exists the thickness passes through unmatched.
func (t StdThicknessTable) Lookup(thickness float64) ThicknessMatch {
	thickness = RoundLength(thickness)
	i := sort.SearchFloat64s(t, thickness)
	if i < len(t) {
		return ThicknessMatch{Available: true, Value: t[i]}
	}
	return ThicknessMatch{Available: false, Value: thickness}
}

// Format renders the table back into millimeters for display.
func (t StdThicknessTable) Format(unit LengthUnit) string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = strconv.FormatFloat(unit.ToMillimeters(v), 'f', -1, 64)
	}
	return strings.Join(parts, ";")
}
