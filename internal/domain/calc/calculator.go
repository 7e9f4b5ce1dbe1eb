// Package calc implements the pure computation core of the analyzer:
// weight-to-volume conversion, box volume calculation, volume unit
// conversion, and the volume efficiency evaluation.
//
// Every function in this package is deterministic and side-effect free.
// Unknown units are programming errors and fail loudly with
// unit.ErrInvalidUnit; no function performs I/O.
package calc

import (
	"github.com/packlabs/dva-go/internal/domain/unit"
	"github.com/packlabs/dva-go/internal/domain/valueobject"
)

// WeightToVolume converts a weight measurement into its displacement
// volume, assuming water at 4°C (1 g/mL).
//
// Parameters:
//   - weight: the measured weight (non-negative by contract)
//   - u: the weight unit
//
// Returns:
//   - valueobject.VolumeSet: the volume in mm³, cm³ and in³
//   - error: unit.ErrInvalidUnit if the weight unit is unknown
func WeightToVolume(weight float64, u unit.WeightUnit) (valueobject.VolumeSet, error) {
	f, err := unit.FactorsFor(u)
	if err != nil {
		return valueobject.VolumeSet{}, err
	}
	return valueobject.VolumeSet{
		MM3: weight * f.MM3,
		CM3: weight * f.CM3,
		IN3: weight * f.IN3,
	}, nil
}

// BoxVolumeMM3 computes the volume of a box from its three dimensions.
// Each dimension is converted to millimeters before multiplying, so the
// result is always in cubic millimeters regardless of the input unit.
// Zero dimensions are accepted and yield a zero volume.
//
// Parameters:
//   - length: box length in the given unit
//   - width: box width in the given unit
//   - height: box height in the given unit
//   - u: the dimension unit
//
// Returns:
//   - float64: the box volume in mm³
//   - error: unit.ErrInvalidUnit if the dimension unit is unknown
func BoxVolumeMM3(length, width, height float64, u unit.DimensionUnit) (float64, error) {
	return valueobject.NewDimensions(length, width, height, u).VolumeMM3()
}

// FromMM3 converts a cubic millimeter volume into the target display unit.
//
// Parameters:
//   - volumeMM3: the volume in mm³
//   - u: the target volume unit
//
// Returns:
//   - float64: the converted volume
//   - error: unit.ErrInvalidUnit if the target unit is unknown
func FromMM3(volumeMM3 float64, u unit.VolumeUnit) (float64, error) {
	f, err := unit.FromMM3Factor(u)
	if err != nil {
		return 0, err
	}
	return volumeMM3 * f, nil
}

// RemainingVolumeMM3 computes the free space left in a container after
// the product is placed in it. A negative result signals overflow (the
// product does not fit) and is a legitimate output, not an error.
//
// Parameters:
//   - containerMM3: the container volume in mm³
//   - productMM3: the product volume in mm³
//
// Returns:
//   - float64: remaining volume in mm³ (negative on overflow)
func RemainingVolumeMM3(containerMM3, productMM3 float64) float64 {
	return containerMM3 - productMM3
}
