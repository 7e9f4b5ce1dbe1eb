package dto

import (
	"net/http"
	"strings"

	"github.com/packlabs/dva-go/internal/application/service"
	"github.com/packlabs/dva-go/internal/domain/entity"
	"github.com/packlabs/dva-go/internal/domain/unit"
)

// ConvertWeightRequest is the request body for a weight conversion.
type ConvertWeightRequest struct {
	// Weight is the measured product weight.
	Weight float64 `json:"weight"`

	// WeightUnit is the weight unit name (grams, ounces, pounds, kilograms).
	WeightUnit string `json:"weight_unit"`

	// Quantity is the number of products packed together (defaults to 1).
	Quantity int `json:"quantity"`
}

// Bind implements render.Binder.
func (req *ConvertWeightRequest) Bind(r *http.Request) error {
	req.WeightUnit = strings.TrimSpace(req.WeightUnit)
	return nil
}

// ComputeBoxRequest is the request body for a box volume computation.
type ComputeBoxRequest struct {
	// Length, Width and Height are the box dimensions.
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// DimensionUnit is the dimension unit name (mm, cm, inches, feet).
	DimensionUnit string `json:"dimension_unit"`

	// ResultUnit is the volume display unit (cubic mm, cubic cm, cubic inches, cubic feet).
	ResultUnit string `json:"result_unit"`
}

// Bind implements render.Binder.
func (req *ComputeBoxRequest) Bind(r *http.Request) error {
	req.DimensionUnit = strings.TrimSpace(req.DimensionUnit)
	req.ResultUnit = strings.TrimSpace(req.ResultUnit)
	return nil
}

// AnalyzeRequest is the request body for a fit analysis. Both volumes
// are expressed in mm³.
type AnalyzeRequest struct {
	// ProductVolumeMM3 is the total product volume in mm³.
	ProductVolumeMM3 float64 `json:"product_volume_mm3"`

	// BoxVolumeMM3 is the box volume in mm³.
	BoxVolumeMM3 float64 `json:"box_volume_mm3"`

	// DisplayUnit is the volume unit to express the results in.
	DisplayUnit string `json:"display_unit"`
}

// Bind implements render.Binder.
func (req *AnalyzeRequest) Bind(r *http.Request) error {
	req.DisplayUnit = strings.TrimSpace(req.DisplayUnit)
	return nil
}

// AddSampleRequest is the request body for storing a sample measurement.
type AddSampleRequest struct {
	// ID is the unique sample identifier.
	ID string `json:"id"`

	// Weight is the measured weight.
	Weight float64 `json:"weight"`

	// Unit is the weight unit name.
	Unit string `json:"unit"`
}

// Bind implements render.Binder.
func (req *AddSampleRequest) Bind(r *http.Request) error {
	req.Unit = strings.TrimSpace(req.Unit)
	return nil
}

// ProjectRequest is the request body for creating or updating a
// project record.
type ProjectRequest struct {
	// ProjectName is the required project title.
	ProjectName string `json:"project_name"`

	// Date is the project date in ISO 8601 (empty means today).
	Date string `json:"date"`

	// Designer, Description and Contact are free-form annotations.
	Designer    string `json:"designer"`
	Description string `json:"description"`
	Contact     string `json:"contact"`

	// Weight and WeightUnit describe the primary product measurement.
	Weight     float64 `json:"weight"`
	WeightUnit string  `json:"weight_unit"`

	// Quantity is the product count (defaults to 1).
	Quantity int `json:"quantity"`

	// BoxLength, BoxWidth and BoxHeight are the container dimensions.
	BoxLength float64 `json:"box_length"`
	BoxWidth  float64 `json:"box_width"`
	BoxHeight float64 `json:"box_height"`

	// DimensionUnit is the unit of the box dimensions.
	DimensionUnit string `json:"dimension_unit"`

	// BoxResultUnit is the display unit for box volume figures.
	BoxResultUnit string `json:"box_result_unit"`

	// ProjectNumber optionally proposes a record number on create.
	// It is ignored on update, where the URL names the record.
	ProjectNumber int `json:"project_number"`
}

// Bind implements render.Binder.
func (req *ProjectRequest) Bind(r *http.Request) error {
	req.ProjectName = strings.TrimSpace(req.ProjectName)
	return nil
}

// ToInput maps the request to the application service input.
//
// Returns:
//   - service.ProjectInput: the raw input for the analyzer service
func (req *ProjectRequest) ToInput() service.ProjectInput {
	return service.ProjectInput{
		ProjectName:    req.ProjectName,
		Date:           req.Date,
		Designer:       req.Designer,
		Description:    req.Description,
		Contact:        req.Contact,
		Weight:         req.Weight,
		WeightUnit:     req.WeightUnit,
		Quantity:       req.Quantity,
		BoxLength:      req.BoxLength,
		BoxWidth:       req.BoxWidth,
		BoxHeight:      req.BoxHeight,
		DimensionUnit:  req.DimensionUnit,
		BoxResultUnit:  req.BoxResultUnit,
		ProposedNumber: req.ProjectNumber,
	}
}

// CreateProjectResponse wraps a stored project together with the
// number-reassignment flag.
type CreateProjectResponse struct {
	// Project is the stored record with its assigned number.
	Project *entity.Project `json:"project"`

	// NumberReassigned reports that a proposed number was taken and a
	// fresh one was assigned instead.
	NumberReassigned bool `json:"number_reassigned"`
}

// NextNumberResponse carries the preview of the next project number.
type NextNumberResponse struct {
	// NextProjectNumber is the number the next created project will get.
	NextProjectNumber int `json:"next_project_number"`
}

// UnitsResponse lists the accepted unit names per category.
type UnitsResponse struct {
	WeightUnits    []string `json:"weight_units"`
	DimensionUnits []string `json:"dimension_units"`
	VolumeUnits    []string `json:"volume_units"`
}

// NewUnitsResponse enumerates the fixed unit sets in display order.
//
// Returns:
//   - UnitsResponse: the accepted unit names per category
func NewUnitsResponse() UnitsResponse {
	resp := UnitsResponse{}
	for _, u := range unit.WeightUnits() {
		resp.WeightUnits = append(resp.WeightUnits, string(u))
	}
	for _, u := range unit.DimensionUnits() {
		resp.DimensionUnits = append(resp.DimensionUnits, string(u))
	}
	for _, u := range unit.VolumeUnits() {
		resp.VolumeUnits = append(resp.VolumeUnits, string(u))
	}
	return resp
}
