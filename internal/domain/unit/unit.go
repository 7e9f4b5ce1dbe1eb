// Package unit defines the fixed measurement units the analyzer works with
// and the multiplicative conversion factors between them.
//
// All internal volume arithmetic uses cubic millimeters as the base unit and
// all internal length arithmetic uses millimeters. Every unit accepted
// anywhere in the system has an entry in the relevant factor table; a unit
// outside the enumerated sets is a programming error and is reported as
// ErrInvalidUnit rather than silently defaulted.
package unit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidUnit is returned when a unit string outside the fixed
// enumerated sets is supplied to a conversion or parse function.
var ErrInvalidUnit = errors.New("invalid unit")

// WeightUnit represents a supported weight measurement unit.
type WeightUnit string

// Supported weight units.
const (
	Grams     WeightUnit = "grams"
	Ounces    WeightUnit = "ounces"
	Pounds    WeightUnit = "pounds"
	Kilograms WeightUnit = "kilograms"
)

// DimensionUnit represents a supported linear dimension unit.
type DimensionUnit string

// Supported dimension units.
const (
	Millimeters DimensionUnit = "mm"
	Centimeters DimensionUnit = "cm"
	Inches      DimensionUnit = "inches"
	Feet        DimensionUnit = "feet"
)

// VolumeUnit represents a supported volume display unit.
type VolumeUnit string

// Supported volume units.
const (
	CubicMM     VolumeUnit = "cubic mm"
	CubicCM     VolumeUnit = "cubic cm"
	CubicInches VolumeUnit = "cubic inches"
	CubicFeet   VolumeUnit = "cubic feet"
)

// WeightFactors holds the multiplicative factors converting a weight
// quantity into volume, assuming water displacement at 1 g/mL.
type WeightFactors struct {
	// MM3 converts the weight into cubic millimeters.
	MM3 float64

	// CM3 converts the weight into cubic centimeters.
	CM3 float64

	// IN3 converts the weight into cubic inches.
	IN3 float64
}

// weightFactors maps each weight unit to its displacement volume factors.
var weightFactors = map[WeightUnit]WeightFactors{
	Grams:     {MM3: 1000, CM3: 1, IN3: 0.061023744},
	Ounces:    {MM3: 28316.8466, CM3: 28.3168466, IN3: 1.7295904},
	Pounds:    {MM3: 453592.37, CM3: 453.59237, IN3: 27.6806742},
	Kilograms: {MM3: 1000000, CM3: 1000, IN3: 61.023744},
}

// millimetersPer maps each dimension unit to its length in millimeters.
var millimetersPer = map[DimensionUnit]float64{
	Millimeters: 1,
	Centimeters: 10,
	Inches:      25.4,
	Feet:        304.8,
}

// fromMM3 maps each volume unit to the factor converting cubic
// millimeters into that unit.
var fromMM3 = map[VolumeUnit]float64{
	CubicMM:     1,
	CubicCM:     0.001,
	CubicInches: 0.000061023744,
	CubicFeet:   0.000000035315,
}

// FactorsFor returns the displacement volume factors for a weight unit.
//
// Parameters:
//   - u: the weight unit to look up
//
// Returns:
//   - WeightFactors: the per-unit volume factors
//   - error: ErrInvalidUnit if the unit is not in the fixed set
func FactorsFor(u WeightUnit) (WeightFactors, error) {
	f, ok := weightFactors[u]
	if !ok {
		return WeightFactors{}, fmt.Errorf("%w: weight unit %q", ErrInvalidUnit, u)
	}
	return f, nil
}

// MillimetersIn returns the length in millimeters of one dimension unit.
//
// Parameters:
//   - u: the dimension unit to look up
//
// Returns:
//   - float64: millimeters per unit
//   - error: ErrInvalidUnit if the unit is not in the fixed set
func MillimetersIn(u DimensionUnit) (float64, error) {
	f, ok := millimetersPer[u]
	if !ok {
		return 0, fmt.Errorf("%w: dimension unit %q", ErrInvalidUnit, u)
	}
	return f, nil
}

// FromMM3Factor returns the factor converting cubic millimeters into the
// target volume unit.
//
// Parameters:
//   - u: the target volume unit
//
// Returns:
//   - float64: multiplicative factor applied to a mm³ value
//   - error: ErrInvalidUnit if the unit is not in the fixed set
func FromMM3Factor(u VolumeUnit) (float64, error) {
	f, ok := fromMM3[u]
	if !ok {
		return 0, fmt.Errorf("%w: volume unit %q", ErrInvalidUnit, u)
	}
	return f, nil
}

// Valid reports whether the weight unit is in the fixed set.
func (u WeightUnit) Valid() bool {
	_, ok := weightFactors[u]
	return ok
}

// Valid reports whether the dimension unit is in the fixed set.
func (u DimensionUnit) Valid() bool {
	_, ok := millimetersPer[u]
	return ok
}

// Valid reports whether the volume unit is in the fixed set.
func (u VolumeUnit) Valid() bool {
	_, ok := fromMM3[u]
	return ok
}

// ParseWeightUnit parses a weight unit from free text.
// Matching is case-insensitive after trimming, so CSV and API payloads
// can spell units loosely.
//
// Parameters:
//   - s: the raw unit string
//
// Returns:
//   - WeightUnit: the parsed unit
//   - error: ErrInvalidUnit if the string matches no supported unit
func ParseWeightUnit(s string) (WeightUnit, error) {
	u := WeightUnit(strings.ToLower(strings.TrimSpace(s)))
	if !u.Valid() {
		return "", fmt.Errorf("%w: weight unit %q", ErrInvalidUnit, s)
	}
	return u, nil
}

// ParseDimensionUnit parses a dimension unit from free text.
//
// Parameters:
//   - s: the raw unit string
//
// Returns:
//   - DimensionUnit: the parsed unit
//   - error: ErrInvalidUnit if the string matches no supported unit
func ParseDimensionUnit(s string) (DimensionUnit, error) {
	u := DimensionUnit(strings.ToLower(strings.TrimSpace(s)))
	if !u.Valid() {
		return "", fmt.Errorf("%w: dimension unit %q", ErrInvalidUnit, s)
	}
	return u, nil
}

// ParseVolumeUnit parses a volume unit from free text.
//
// Parameters:
//   - s: the raw unit string
//
// Returns:
//   - VolumeUnit: the parsed unit
//   - error: ErrInvalidUnit if the string matches no supported unit
func ParseVolumeUnit(s string) (VolumeUnit, error) {
	u := VolumeUnit(strings.ToLower(strings.TrimSpace(s)))
	if !u.Valid() {
		return "", fmt.Errorf("%w: volume unit %q", ErrInvalidUnit, s)
	}
	return u, nil
}

// WeightUnits returns the supported weight units in a stable order.
func WeightUnits() []WeightUnit {
	return []WeightUnit{Grams, Ounces, Pounds, Kilograms}
}

// DimensionUnits returns the supported dimension units in a stable order.
func DimensionUnits() []DimensionUnit {
	return []DimensionUnit{Millimeters, Centimeters, Inches, Feet}
}

// VolumeUnits returns the supported volume units in a stable order.
func VolumeUnits() []VolumeUnit {
	return []VolumeUnit{CubicMM, CubicCM, CubicInches, CubicFeet}
}
