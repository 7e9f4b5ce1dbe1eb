package entity

import (
	"errors"
	"strings"

	"github.com/packlabs/dva-go/internal/domain/calc"
	"github.com/packlabs/dva-go/internal/domain/unit"
	"github.com/packlabs/dva-go/internal/domain/valueobject"
)

// Sample errors define domain-specific error conditions for samples.
var (
	ErrEmptySampleID        = errors.New("sample ID cannot be empty")
	ErrNegativeSampleWeight = errors.New("sample weight cannot be negative")
)

// Sample is a single weight measurement in the primary data set.
// Samples are identified by a caller-chosen ID; uniqueness is enforced
// by the store at insertion with exact (case-sensitive) matching.
type Sample struct {
	// ID is the unique sample identifier (e.g., "Sample-001").
	ID string `json:"id"`

	// Weight is the measured weight in Unit.
	Weight float64 `json:"weight"`

	// Unit is the weight unit of the measurement.
	Unit unit.WeightUnit `json:"unit"`
}

// NewSample creates a new Sample with the provided measurement.
//
// Parameters:
//   - id: unique sample identifier (required, trimmed)
//   - weight: measured weight (must be non-negative)
//   - u: the weight unit
//
// Returns:
//   - Sample: the created sample
//   - error: validation error if input is invalid
func NewSample(id string, weight float64, u unit.WeightUnit) (Sample, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Sample{}, ErrEmptySampleID
	}
	if weight < 0 {
		return Sample{}, ErrNegativeSampleWeight
	}
	if !u.Valid() {
		return Sample{}, unit.ErrInvalidUnit
	}

	return Sample{
		ID:     id,
		Weight: weight,
		Unit:   u,
	}, nil
}

// Volume computes the displacement volume of the sample.
//
// Returns:
//   - valueobject.VolumeSet: the volume in mm³, cm³ and in³
//   - error: unit.ErrInvalidUnit if the stored unit is unknown
func (s Sample) Volume() (valueobject.VolumeSet, error) {
	return calc.WeightToVolume(s.Weight, s.Unit)
}
