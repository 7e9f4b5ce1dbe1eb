// Package valueobject contains value objects that represent concepts without identity.
// Value objects are immutable and compared by their attributes rather than identity.
// They encapsulate validation logic and ensure data integrity.
//
// Value Objects follow these principles:
//   - Immutability: Once created, they cannot be changed.
//   - Equality: Two value objects are equal if all their attributes are equal.
//   - Self-validation: They validate their own data upon creation.
//   - Side-effect free: Methods return new instances rather than modifying state
package valueobject

import (
	"fmt"

	"github.com/packlabs/dva-go/internal/domain/unit"
)

// Dimensions represents the outer dimensions of a secondary packaging box.
// All three measurements share a single dimension unit.
type Dimensions struct {
	// Length in the declared unit.
	Length float64 `json:"length"`

	// Width in the declared unit.
	Width float64 `json:"width"`

	// Height in the declared unit.
	Height float64 `json:"height"`

	// Unit the three measurements are expressed in.
	Unit unit.DimensionUnit `json:"unit"`
}

// NewDimensions creates a new Dimensions value object.
//
// Parameters:
//   - length: box length in the given unit
//   - width: box width in the given unit
//   - height: box height in the given unit
//   - u: the dimension unit for all three measurements
//
// Returns:
//   - Dimensions: new Dimensions value object
func NewDimensions(length, width, height float64, u unit.DimensionUnit) Dimensions {
	return Dimensions{
		Length: length,
		Width:  width,
		Height: height,
		Unit:   u,
	}
}

// VolumeMM3 calculates the box volume in cubic millimeters.
// Each dimension is converted to millimeters first, then the three are
// multiplied. Zero dimensions yield a zero volume without error; only an
// unenumerated unit fails.
//
// Returns:
//   - float64: volume in mm³
//   - error: unit.ErrInvalidUnit if the dimension unit is unknown
func (d Dimensions) VolumeMM3() (float64, error) {
	perMM, err := unit.MillimetersIn(d.Unit)
	if err != nil {
		return 0, err
	}
	return (d.Length * perMM) * (d.Width * perMM) * (d.Height * perMM), nil
}

// IsEmpty checks if all dimensions are zero.
//
// Returns:
//   - bool: true if all dimensions are zero
func (d Dimensions) IsEmpty() bool {
	return d.Length == 0 && d.Width == 0 && d.Height == 0
}

// String returns a formatted string representation.
//
// Returns:
//   - string: formatted dimensions (e.g., "10.0x10.0x10.0 cm")
func (d Dimensions) String() string {
	return fmt.Sprintf("%.1fx%.1fx%.1f %s", d.Length, d.Width, d.Height, d.Unit)
}
