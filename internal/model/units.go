package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownUnit is returned when a length unit name is not recognized.
var ErrUnknownUnit = errors.New("unknown length unit")

// LengthUnit is the unit a scene snapshot expresses its lengths in.
type LengthUnit string

const (
	UnitMillimeter LengthUnit = "mm"
	UnitCentimeter LengthUnit = "cm"
	UnitMeter      LengthUnit = "m"
	UnitInch       LengthUnit = "in"
	UnitFoot       LengthUnit = "ft"
)

// millimetersPer holds how many millimeters one unit spans.
var millimetersPer = map[LengthUnit]float64{
	UnitMillimeter: 1,
	UnitCentimeter: 10,
	UnitMeter:      1000,
	UnitInch:       25.4,
	UnitFoot:       304.8,
}

// ParseLengthUnit converts a unit name ("mm", "inches", "\"", ...) into a LengthUnit.
// An empty name means millimeters.
func ParseLengthUnit(s string) (LengthUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mm", "millimeter", "millimeters":
		return UnitMillimeter, nil
	case "cm", "centimeter", "centimeters":
		return UnitCentimeter, nil
	case "m", "meter", "meters":
		return UnitMeter, nil
	case "in", "inch", "inches", "\"":
		return UnitInch, nil
	case "ft", "foot", "feet", "'":
		return UnitFoot, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
}

// FromMillimeters converts a millimeter value into this unit.
func (u LengthUnit) FromMillimeters(mm float64) float64 {
	return RoundLength(mm / u.factor())
}

// ToMillimeters converts a value in this unit into millimeters.
func (u LengthUnit) ToMillimeters(v float64) float64 {
	return RoundLength(v * u.factor())
}

func (u LengthUnit) factor() float64 {
	if f, ok := millimetersPer[u]; ok {
		return f
	}
	return 1
}

func (u LengthUnit) String() string {
	return string(u)
}

// lengthScale sets the resolution (1/lengthScale) lengths are rounded to
// before they are compared or used as keys.
const lengthScale = 1e6

// RoundLength removes floating point noise below the length resolution.
func RoundLength(v float64) float64 {
	return math.Round(v*lengthScale) / lengthScale
}
