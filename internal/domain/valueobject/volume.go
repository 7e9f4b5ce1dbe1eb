package valueobject

import (
	"fmt"

	"github.com/packlabs/dva-go/internal/domain/unit"
)

// VolumeSet represents one displacement volume expressed in the three
// display units the analyzer reports side by side. Cubic millimeters is
// the canonical value; the other two are derived from the same fixed
// factor table and carried so callers never re-derive them ad hoc.
//
// Example usage:
//
//	vs, _ := calc.WeightToVolume(100, unit.Grams)
//	fmt.Println(vs.MM3) // 100000
type VolumeSet struct {
	// MM3 is the volume in cubic millimeters (canonical).
	MM3 float64 `json:"mm3"`

	// CM3 is the volume in cubic centimeters.
	CM3 float64 `json:"cm3"`

	// IN3 is the volume in cubic inches.
	IN3 float64 `json:"in3"`
}

// In converts the canonical mm³ value into the target display unit.
//
// Parameters:
//   - u: the target volume unit
//
// Returns:
//   - float64: the converted volume
//   - error: unit.ErrInvalidUnit if the target unit is unknown
func (v VolumeSet) In(u unit.VolumeUnit) (float64, error) {
	f, err := unit.FromMM3Factor(u)
	if err != nil {
		return 0, err
	}
	return v.MM3 * f, nil
}

// IsZero checks if the volume is zero.
//
// Returns:
//   - bool: true if the canonical mm³ value is zero
func (v VolumeSet) IsZero() bool {
	return v.MM3 == 0
}

// String returns a formatted string representation.
//
// Returns:
//   - string: formatted volume (e.g., "100000.00 mm³")
func (v VolumeSet) String() string {
	return fmt.Sprintf("%.2f mm³", v.MM3)
}
