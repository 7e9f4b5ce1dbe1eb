// Package entity contains the core business entities of the domain layer.
package entity

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/packlabs/dva-go/internal/domain/calc"
	"github.com/packlabs/dva-go/internal/domain/unit"
	"github.com/packlabs/dva-go/internal/domain/valueobject"
)

// Project errors define domain-specific error conditions for projects.
var (
	ErrInvalidProjectName   = errors.New("project name cannot be empty")
	ErrNegativeWeight       = errors.New("weight cannot be negative")
	ErrNegativeDimension    = errors.New("box dimensions cannot be negative")
	ErrInvalidQuantity      = errors.New("product quantity must be positive")
	ErrInvalidProjectNumber = errors.New("project number must be positive")
)

// Timestamp layouts used in persisted project records.
const (
	// DateLayout is the layout of the project date field.
	DateLayout = "2006-01-02"

	// LastModifiedLayout is the layout of the last_modified field.
	LastModifiedLayout = "2006-01-02 15:04:05"
)

// derivedTolerance is the relative tolerance used when checking that a
// persisted derived volume still matches a fresh computation.
const derivedTolerance = 1e-6

// Project is the central persisted entity: one unit of analysis work
// combining a primary product measurement, its secondary packaging box,
// and project metadata, keyed by a unique project number.
//
// The derived volume fields (PrimaryVolumeMM3, TotalProductVolumeMM3,
// BoxVolumeMM3) are always reproducible from the raw inputs via
// RecomputeDerived; the store validates them on load and never trusts a
// caller's values blindly.
type Project struct {
	// ProjectNumber is the unique key, assigned monotonically from 1000.
	// Zero means unsaved: the store assigns a number on first save.
	ProjectNumber int `json:"project_number"`

	// ProjectName is the human-readable project title.
	ProjectName string `json:"project_name"`

	// Date is the project date in ISO 8601 (see DateLayout).
	Date string `json:"date"`

	// Designer is the name of the responsible designer.
	Designer string `json:"designer"`

	// Description provides free-text details about the project.
	Description string `json:"description"`

	// Contact is free-text contact information.
	Contact string `json:"contact"`

	// Weight is the measured product weight in WeightUnit.
	Weight float64 `json:"weight"`

	// WeightUnit is the unit the weight was measured in.
	WeightUnit unit.WeightUnit `json:"weight_unit"`

	// PrimaryVolumeMM3 is the derived displacement volume of one product.
	PrimaryVolumeMM3 float64 `json:"primary_volume_mm3"`

	// ProductQuantity is the number of products packed together.
	ProductQuantity int `json:"product_quantity"`

	// TotalProductVolumeMM3 is PrimaryVolumeMM3 times ProductQuantity.
	TotalProductVolumeMM3 float64 `json:"total_product_volume_mm3"`

	// BoxLength is the box length in DimensionUnit.
	BoxLength float64 `json:"box_length"`

	// BoxWidth is the box width in DimensionUnit.
	BoxWidth float64 `json:"box_width"`

	// BoxHeight is the box height in DimensionUnit.
	BoxHeight float64 `json:"box_height"`

	// DimensionUnit is the unit the box dimensions are expressed in.
	DimensionUnit unit.DimensionUnit `json:"dimension_unit"`

	// BoxResultUnit is the preferred display unit for box volume results.
	BoxResultUnit unit.VolumeUnit `json:"box_result_unit"`

	// BoxVolumeMM3 is the derived box volume.
	BoxVolumeMM3 float64 `json:"box_volume_mm3"`

	// LastModified is the mutation timestamp (see LastModifiedLayout).
	LastModified string `json:"last_modified"`
}

// NewProject creates a new unsaved Project with the provided metadata.
// The project number stays zero until the store assigns one on save.
//
// Parameters:
//   - name: project title (required)
//   - designer: responsible designer
//   - description: free-text project description
//   - contact: free-text contact information
//   - date: the project date
//
// Returns:
//   - *Project: newly created unsaved Project
//   - error: validation error if input is invalid
func NewProject(name, designer, description, contact string, date time.Time) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidProjectName
	}

	return &Project{
		ProjectName:     name,
		Date:            date.Format(DateLayout),
		Designer:        designer,
		Description:     description,
		Contact:         contact,
		WeightUnit:      unit.Grams,
		ProductQuantity: 1,
		DimensionUnit:   unit.Centimeters,
		BoxResultUnit:   unit.CubicCM,
	}, nil
}

// SetMeasurement records the primary product measurement.
//
// Parameters:
//   - weight: measured weight (must be non-negative)
//   - u: the weight unit
//   - quantity: number of products packed together (must be positive)
//
// Returns:
//   - error: ErrNegativeWeight, ErrInvalidQuantity or unit.ErrInvalidUnit
func (p *Project) SetMeasurement(weight float64, u unit.WeightUnit, quantity int) error {
	if weight < 0 {
		return ErrNegativeWeight
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if !u.Valid() {
		return unit.ErrInvalidUnit
	}
	p.Weight = weight
	p.WeightUnit = u
	p.ProductQuantity = quantity
	return nil
}

// SetBox records the secondary packaging box dimensions.
// Zero dimensions are allowed (an unmeasured box), negatives are not.
//
// Parameters:
//   - length, width, height: box dimensions in the given unit
//   - dimUnit: the dimension unit
//   - resultUnit: the preferred display unit for results
//
// Returns:
//   - error: ErrNegativeDimension or unit.ErrInvalidUnit
func (p *Project) SetBox(length, width, height float64, dimUnit unit.DimensionUnit, resultUnit unit.VolumeUnit) error {
	if length < 0 || width < 0 || height < 0 {
		return ErrNegativeDimension
	}
	if !dimUnit.Valid() || !resultUnit.Valid() {
		return unit.ErrInvalidUnit
	}
	p.BoxLength = length
	p.BoxWidth = width
	p.BoxHeight = height
	p.DimensionUnit = dimUnit
	p.BoxResultUnit = resultUnit
	return nil
}

// Box returns the packaging dimensions as a value object.
//
// Returns:
//   - valueobject.Dimensions: the box dimensions with their unit
func (p *Project) Box() valueobject.Dimensions {
	return valueobject.NewDimensions(p.BoxLength, p.BoxWidth, p.BoxHeight, p.DimensionUnit)
}

// RecomputeDerived recalculates all derived volume fields from the raw
// inputs and stamps the last-modified timestamp. The stored derived
// values are overwritten unconditionally, which keeps every persisted
// record internally consistent with the conversion tables.
//
// Parameters:
//   - now: the mutation timestamp
//
// Returns:
//   - error: unit.ErrInvalidUnit if a stored unit is unknown
func (p *Project) RecomputeDerived(now time.Time) error {
	vs, err := calc.WeightToVolume(p.Weight, p.WeightUnit)
	if err != nil {
		return err
	}
	boxVol, err := p.Box().VolumeMM3()
	if err != nil {
		return err
	}

	quantity := p.ProductQuantity
	if quantity < 1 {
		quantity = 1
	}

	p.PrimaryVolumeMM3 = vs.MM3
	p.TotalProductVolumeMM3 = vs.MM3 * float64(quantity)
	p.BoxVolumeMM3 = boxVol
	p.LastModified = now.Format(LastModifiedLayout)
	return nil
}

// DerivedConsistent checks whether the persisted derived volumes still
// match a fresh computation from the raw inputs.
//
// Returns:
//   - bool: true if all derived fields are within tolerance
//   - error: unit.ErrInvalidUnit if a stored unit is unknown
func (p *Project) DerivedConsistent() (bool, error) {
	vs, err := calc.WeightToVolume(p.Weight, p.WeightUnit)
	if err != nil {
		return false, err
	}
	boxVol, err := p.Box().VolumeMM3()
	if err != nil {
		return false, err
	}

	quantity := p.ProductQuantity
	if quantity < 1 {
		quantity = 1
	}

	return withinTolerance(p.PrimaryVolumeMM3, vs.MM3) &&
		withinTolerance(p.TotalProductVolumeMM3, vs.MM3*float64(quantity)) &&
		withinTolerance(p.BoxVolumeMM3, boxVol), nil
}

// Efficiency evaluates the volume utilization of the packaging box
// against the total product volume.
//
// Returns:
//   - calc.Efficiency: utilization percentage, remaining space and tier
func (p *Project) Efficiency() calc.Efficiency {
	return calc.Evaluate(p.TotalProductVolumeMM3, p.BoxVolumeMM3)
}

// IsSaved checks whether the project has been assigned a number.
//
// Returns:
//   - bool: true if the project number is set
func (p *Project) IsSaved() bool {
	return p.ProjectNumber > 0
}

// withinTolerance compares two volumes with a relative tolerance.
func withinTolerance(stored, computed float64) bool {
	diff := math.Abs(stored - computed)
	if computed == 0 {
		return diff == 0
	}
	return diff/math.Abs(computed) <= derivedTolerance
}
