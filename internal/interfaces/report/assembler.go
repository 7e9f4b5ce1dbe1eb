// Package report assembles presentation-ready summaries of stored
// project records. The assembler converts the raw mm³ figures into
// each project's chosen display unit and attaches the efficiency
// evaluation, so clients can render a report without repeating the
// conversion arithmetic.
package report

import (
	"context"
	"fmt"

	"github.com/packlabs/dva-go/internal/domain/calc"
	"github.com/packlabs/dva-go/internal/domain/entity"
	"github.com/packlabs/dva-go/internal/domain/repository"
	"github.com/packlabs/dva-go/internal/domain/unit"
)

// ProjectReport is the full report payload for a single project.
type ProjectReport struct {
	// ProjectNumber and ProjectName identify the record.
	ProjectNumber int    `json:"project_number"`
	ProjectName   string `json:"project_name"`

	// Date, Designer, Description and Contact echo the stored
	// annotations.
	Date        string `json:"date"`
	Designer    string `json:"designer,omitempty"`
	Description string `json:"description,omitempty"`
	Contact     string `json:"contact,omitempty"`

	// Weight restates the raw measurement.
	Weight     float64         `json:"weight"`
	WeightUnit unit.WeightUnit `json:"weight_unit"`
	Quantity   int             `json:"product_quantity"`

	// BoxDimensions is the formatted container description, e.g.
	// "(10.0x10.0x10.0 cm)". Empty when no box was entered.
	BoxDimensions string `json:"box_dimensions,omitempty"`

	// DisplayUnit is the unit every converted volume below uses.
	DisplayUnit unit.VolumeUnit `json:"display_unit"`

	// PrimaryVolume, TotalProductVolume, BoxVolume and RemainingVolume
	// are the stored mm³ figures converted into DisplayUnit.
	PrimaryVolume      float64 `json:"primary_volume"`
	TotalProductVolume float64 `json:"total_product_volume"`
	BoxVolume          float64 `json:"box_volume"`
	RemainingVolume    float64 `json:"remaining_volume"`

	// Efficiency is the volume utilization evaluation of the total
	// product volume against the box.
	Efficiency calc.Efficiency `json:"efficiency"`

	// LastModified is the record's mutation timestamp.
	LastModified string `json:"last_modified"`
}

// Assembler builds project reports from the record store.
type Assembler struct {
	projects repository.ProjectRepository
}

// NewAssembler creates a report assembler backed by the given store.
func NewAssembler(projects repository.ProjectRepository) *Assembler {
	return &Assembler{projects: projects}
}

// Build assembles the report for a single project.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - number: the project number
//
// Returns:
//   - ProjectReport: the presentation-ready payload
//   - error: repository.ErrProjectNotFound or a conversion error
func (a *Assembler) Build(ctx context.Context, number int) (ProjectReport, error) {
	project, err := a.projects.Get(ctx, number)
	if err != nil {
		return ProjectReport{}, err
	}
	return FromProject(project)
}

// FromProject assembles a report payload from an in-memory project.
//
// Parameters:
//   - project: the project record
//
// Returns:
//   - ProjectReport: the presentation-ready payload
//   - error: a conversion error if the stored display unit is unknown
func FromProject(project *entity.Project) (ProjectReport, error) {
	du := project.BoxResultUnit

	primary, err := calc.FromMM3(project.PrimaryVolumeMM3, du)
	if err != nil {
		return ProjectReport{}, fmt.Errorf("project %d has an invalid display unit: %w", project.ProjectNumber, err)
	}
	total, err := calc.FromMM3(project.TotalProductVolumeMM3, du)
	if err != nil {
		return ProjectReport{}, err
	}
	box, err := calc.FromMM3(project.BoxVolumeMM3, du)
	if err != nil {
		return ProjectReport{}, err
	}
	remainingMM3 := calc.RemainingVolumeMM3(project.BoxVolumeMM3, project.TotalProductVolumeMM3)
	remaining, err := calc.FromMM3(remainingMM3, du)
	if err != nil {
		return ProjectReport{}, err
	}

	dims := project.Box()
	boxDescription := ""
	if !dims.IsEmpty() {
		boxDescription = dims.String()
	}

	return ProjectReport{
		ProjectNumber:      project.ProjectNumber,
		ProjectName:        project.ProjectName,
		Date:               project.Date,
		Designer:           project.Designer,
		Description:        project.Description,
		Contact:            project.Contact,
		Weight:             project.Weight,
		WeightUnit:         project.WeightUnit,
		Quantity:           project.ProductQuantity,
		BoxDimensions:      boxDescription,
		DisplayUnit:        du,
		PrimaryVolume:      primary,
		TotalProductVolume: total,
		BoxVolume:          box,
		RemainingVolume:    remaining,
		Efficiency:         project.Efficiency(),
		LastModified:       project.LastModified,
	}, nil
}
