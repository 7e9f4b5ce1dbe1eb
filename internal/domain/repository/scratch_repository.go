package repository

import "github.com/packlabs/dva-go/internal/domain/unit"

// WeightDraft is the in-progress primary product measurement.
type WeightDraft struct {
	// Weight is the entered weight.
	Weight float64 `json:"weight"`

	// Unit is the selected weight unit.
	Unit unit.WeightUnit `json:"unit"`

	// Quantity is the entered product quantity.
	Quantity int `json:"quantity"`
}

// BoxDraft is the in-progress secondary packaging measurement.
type BoxDraft struct {
	// Length, Width and Height are the entered box dimensions.
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Unit is the selected dimension unit.
	Unit unit.DimensionUnit `json:"unit"`

	// ResultUnit is the selected display unit for results.
	ResultUnit unit.VolumeUnit `json:"result_unit"`
}

// ScratchRepository persists partially-completed calculator state
// between requests. Drafts are a convenience cache, not canonical data:
// implementations must treat absent or unreadable drafts as simply
// missing, and callers must never depend on a draft being there.
type ScratchRepository interface {
	// SaveWeight persists the in-progress weight measurement.
	SaveWeight(draft WeightDraft) error

	// LoadWeight reads the in-progress weight measurement.
	// The bool result is false when no usable draft exists.
	LoadWeight() (WeightDraft, bool)

	// SaveBox persists the in-progress box measurement.
	SaveBox(draft BoxDraft) error

	// LoadBox reads the in-progress box measurement.
	// The bool result is false when no usable draft exists.
	LoadBox() (BoxDraft, bool)

	// Clear deletes all drafts. Missing drafts are not an error.
	Clear() error
}
