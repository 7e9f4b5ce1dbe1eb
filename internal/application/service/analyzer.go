// Package service contains the application services that compose the
// pure computation core with the record stores behind one API for the
// interface layer. The services hold no state of their own: all record
// state lives in the repositories and all computation is delegated to
// the domain packages.
package service

import (
	"context"
	"time"

	"github.com/packlabs/dva-go/internal/application/port"
	"github.com/packlabs/dva-go/internal/domain/calc"
	"github.com/packlabs/dva-go/internal/domain/entity"
	"github.com/packlabs/dva-go/internal/domain/repository"
	"github.com/packlabs/dva-go/internal/domain/unit"
	"github.com/packlabs/dva-go/internal/domain/valueobject"
)

// WeightConversion is the result of converting a product weight into
// displacement volume.
type WeightConversion struct {
	// Volume is the displacement volume of one product.
	Volume valueobject.VolumeSet `json:"volume"`

	// Quantity is the number of products packed together.
	Quantity int `json:"quantity"`

	// TotalVolumeMM3 is the volume of all products in mm³.
	TotalVolumeMM3 float64 `json:"total_volume_mm3"`
}

// BoxComputation is the result of computing a box volume.
type BoxComputation struct {
	// VolumeMM3 is the box volume in mm³.
	VolumeMM3 float64 `json:"volume_mm3"`

	// Volume is the box volume converted into ResultUnit.
	Volume float64 `json:"volume"`

	// ResultUnit is the display unit Volume is expressed in.
	ResultUnit unit.VolumeUnit `json:"result_unit"`
}

// Analysis is the result of comparing a product volume against a box.
type Analysis struct {
	// Efficiency is the volume utilization evaluation.
	Efficiency calc.Efficiency `json:"efficiency"`

	// RemainingVolumeMM3 is the free space in mm³ (negative on overflow).
	RemainingVolumeMM3 float64 `json:"remaining_volume_mm3"`

	// RemainingVolume is the free space converted into DisplayUnit.
	RemainingVolume float64 `json:"remaining_volume"`

	// ProductVolume and BoxVolume are the inputs converted into DisplayUnit.
	ProductVolume float64 `json:"product_volume"`
	BoxVolume     float64 `json:"box_volume"`

	// DisplayUnit is the unit the converted values are expressed in.
	DisplayUnit unit.VolumeUnit `json:"display_unit"`
}

// SampleResult pairs a stored sample with its computed volumes, the
// batch conversion view of the primary data set.
type SampleResult struct {
	// Sample is the stored measurement.
	Sample entity.Sample `json:"sample"`

	// Volume is the displacement volume of the sample.
	Volume valueobject.VolumeSet `json:"volume"`
}

// ProjectInput carries the raw field values for creating or updating a
// project record. Units arrive as strings from the interface layer and
// are parsed against the fixed unit sets.
type ProjectInput struct {
	ProjectName string
	Date        string // DateLayout; empty means today
	Designer    string
	Description string
	Contact     string

	Weight     float64
	WeightUnit string
	Quantity   int

	BoxLength     float64
	BoxWidth      float64
	BoxHeight     float64
	DimensionUnit string
	BoxResultUnit string

	// ProposedNumber is an optional client-proposed project number for
	// creates. Zero lets the store assign the next one.
	ProposedNumber int
}

// AnalyzerService composes the volume calculator, the efficiency
// evaluator and the record stores.
type AnalyzerService struct {
	projects repository.ProjectRepository
	samples  repository.SampleRepository
	drafts   repository.ScratchRepository
	clock    port.Clock
	log      port.Logger
}

// NewAnalyzerService creates the analyzer application service.
//
// Parameters:
//   - projects: project record store
//   - samples: sample record store
//   - drafts: scratch store for in-progress calculator state
//   - clock: time source for record timestamps
//   - log: structured logger
//
// Returns:
//   - *AnalyzerService: the ready service
func NewAnalyzerService(
	projects repository.ProjectRepository,
	samples repository.SampleRepository,
	drafts repository.ScratchRepository,
	clock port.Clock,
	log port.Logger,
) *AnalyzerService {
	return &AnalyzerService{
		projects: projects,
		samples:  samples,
		drafts:   drafts,
		clock:    clock,
		log:      log,
	}
}

// ConvertWeight converts a product weight into displacement volume and
// records the measurement as an in-progress draft.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - weight: measured weight (must be non-negative)
//   - weightUnit: raw weight unit string
//   - quantity: product quantity (values below 1 are treated as 1)
//
// Returns:
//   - WeightConversion: per-product and total volumes
//   - error: entity.ErrNegativeWeight or unit.ErrInvalidUnit
func (s *AnalyzerService) ConvertWeight(ctx context.Context, weight float64, weightUnit string, quantity int) (WeightConversion, error) {
	if weight < 0 {
		return WeightConversion{}, entity.ErrNegativeWeight
	}
	u, err := unit.ParseWeightUnit(weightUnit)
	if err != nil {
		return WeightConversion{}, err
	}
	if quantity < 1 {
		quantity = 1
	}

	vs, err := calc.WeightToVolume(weight, u)
	if err != nil {
		return WeightConversion{}, err
	}

	// Drafts are a convenience cache; failing to write one must not
	// fail the conversion.
	if err := s.drafts.SaveWeight(repository.WeightDraft{Weight: weight, Unit: u, Quantity: quantity}); err != nil {
		s.log.Warn("failed to save weight draft", "error", err)
	}

	return WeightConversion{
		Volume:         vs,
		Quantity:       quantity,
		TotalVolumeMM3: vs.MM3 * float64(quantity),
	}, nil
}

// ComputeBoxVolume computes a box volume from its dimensions and
// records the measurement as an in-progress draft.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - length, width, height: box dimensions (must be non-negative)
//   - dimensionUnit: raw dimension unit string
//   - resultUnit: raw display unit string for the converted result
//
// Returns:
//   - BoxComputation: the volume in mm³ and in the display unit
//   - error: entity.ErrNegativeDimension or unit.ErrInvalidUnit
func (s *AnalyzerService) ComputeBoxVolume(ctx context.Context, length, width, height float64, dimensionUnit, resultUnit string) (BoxComputation, error) {
	if length < 0 || width < 0 || height < 0 {
		return BoxComputation{}, entity.ErrNegativeDimension
	}
	du, err := unit.ParseDimensionUnit(dimensionUnit)
	if err != nil {
		return BoxComputation{}, err
	}
	ru, err := unit.ParseVolumeUnit(resultUnit)
	if err != nil {
		return BoxComputation{}, err
	}

	volumeMM3, err := calc.BoxVolumeMM3(length, width, height, du)
	if err != nil {
		return BoxComputation{}, err
	}
	converted, err := calc.FromMM3(volumeMM3, ru)
	if err != nil {
		return BoxComputation{}, err
	}

	if err := s.drafts.SaveBox(repository.BoxDraft{
		Length: length, Width: width, Height: height,
		Unit: du, ResultUnit: ru,
	}); err != nil {
		s.log.Warn("failed to save box draft", "error", err)
	}

	return BoxComputation{
		VolumeMM3:  volumeMM3,
		Volume:     converted,
		ResultUnit: ru,
	}, nil
}

// Analyze compares a product volume against a box volume. Both inputs
// are in mm³; the converted figures are expressed in displayUnit.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - productVolumeMM3: total product volume in mm³
//   - boxVolumeMM3: box volume in mm³
//   - displayUnit: raw display unit string
//
// Returns:
//   - Analysis: efficiency, remaining space and converted volumes
//   - error: unit.ErrInvalidUnit if the display unit is unknown
func (s *AnalyzerService) Analyze(ctx context.Context, productVolumeMM3, boxVolumeMM3 float64, displayUnit string) (Analysis, error) {
	du, err := unit.ParseVolumeUnit(displayUnit)
	if err != nil {
		return Analysis{}, err
	}

	remainingMM3 := calc.RemainingVolumeMM3(boxVolumeMM3, productVolumeMM3)
	remaining, err := calc.FromMM3(remainingMM3, du)
	if err != nil {
		return Analysis{}, err
	}
	product, err := calc.FromMM3(productVolumeMM3, du)
	if err != nil {
		return Analysis{}, err
	}
	box, err := calc.FromMM3(boxVolumeMM3, du)
	if err != nil {
		return Analysis{}, err
	}

	return Analysis{
		Efficiency:         calc.Evaluate(productVolumeMM3, boxVolumeMM3),
		RemainingVolumeMM3: remainingMM3,
		RemainingVolume:    remaining,
		ProductVolume:      product,
		BoxVolume:          box,
		DisplayUnit:        du,
	}, nil
}

// DraftState is the recoverable in-progress calculator state.
type DraftState struct {
	// Weight is the saved weight measurement, if any.
	Weight *repository.WeightDraft `json:"weight,omitempty"`

	// Box is the saved box measurement, if any.
	Box *repository.BoxDraft `json:"box,omitempty"`
}

// Drafts returns the saved in-progress calculator state so a client
// can restore a half-finished session.
//
// Returns:
//   - DraftState: the saved drafts; nil fields mean nothing was saved
func (s *AnalyzerService) Drafts() DraftState {
	state := DraftState{}
	if draft, ok := s.drafts.LoadWeight(); ok {
		state.Weight = &draft
	}
	if draft, ok := s.drafts.LoadBox(); ok {
		state.Box = &draft
	}
	return state
}

// ListSampleResults returns every stored sample together with its
// computed volumes, in stored order.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//
// Returns:
//   - []SampleResult: the batch conversion results
//   - error: any storage error
func (s *AnalyzerService) ListSampleResults(ctx context.Context) ([]SampleResult, error) {
	samples, err := s.samples.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]SampleResult, 0, len(samples))
	for _, sample := range samples {
		vs, err := sample.Volume()
		if err != nil {
			// A stored unit outside the fixed set means the file was
			// edited by hand; skip the record rather than failing the
			// whole listing.
			s.log.Warn("sample has an unknown unit, skipping",
				"sample_id", sample.ID,
				"unit", sample.Unit,
			)
			continue
		}
		results = append(results, SampleResult{Sample: sample, Volume: vs})
	}
	return results, nil
}

// AddSample validates and stores a new sample measurement.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - id: unique sample identifier
//   - weight: measured weight
//   - weightUnit: raw weight unit string
//
// Returns:
//   - entity.Sample: the stored sample
//   - error: validation error or repository.ErrDuplicateSampleID
func (s *AnalyzerService) AddSample(ctx context.Context, id string, weight float64, weightUnit string) (entity.Sample, error) {
	u, err := unit.ParseWeightUnit(weightUnit)
	if err != nil {
		return entity.Sample{}, err
	}
	sample, err := entity.NewSample(id, weight, u)
	if err != nil {
		return entity.Sample{}, err
	}
	if err := s.samples.Add(ctx, sample); err != nil {
		return entity.Sample{}, err
	}
	return sample, nil
}

// RemoveSample deletes a sample by ID (exact match).
func (s *AnalyzerService) RemoveSample(ctx context.Context, id string) (bool, error) {
	return s.samples.Remove(ctx, id)
}

// CreateProject assembles a new project record from raw input, derives
// its volumes and stores it. In-progress drafts are cleared afterwards,
// matching the calculator workflow where a saved project consumes the
// scratch state.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - input: the raw project field values
//
// Returns:
//   - *entity.Project: the stored project with its assigned number
//   - bool: true if a proposed number collided and was reassigned
//   - error: validation or storage error
func (s *AnalyzerService) CreateProject(ctx context.Context, input ProjectInput) (*entity.Project, bool, error) {
	project, err := s.buildProject(input)
	if err != nil {
		return nil, false, err
	}
	project.ProjectNumber = input.ProposedNumber

	created, reassigned, err := s.projects.Create(ctx, project)
	if err != nil {
		return nil, false, err
	}
	if reassigned {
		s.log.Warn("proposed project number was taken, assigned next available",
			"proposed", input.ProposedNumber,
			"assigned", created.ProjectNumber,
		)
	}

	if err := s.drafts.Clear(); err != nil {
		s.log.Warn("failed to clear calculator drafts", "error", err)
	}

	s.log.Info("project created",
		"project_number", created.ProjectNumber,
		"project_name", created.ProjectName,
	)
	return created, reassigned, nil
}

// UpdateProject replaces an existing project record in full with values
// assembled from raw input.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - number: the project number to update
//   - input: the raw project field values
//
// Returns:
//   - *entity.Project: the stored project
//   - error: validation or storage error
func (s *AnalyzerService) UpdateProject(ctx context.Context, number int, input ProjectInput) (*entity.Project, error) {
	if number <= 0 {
		return nil, entity.ErrInvalidProjectNumber
	}

	project, err := s.buildProject(input)
	if err != nil {
		return nil, err
	}
	project.ProjectNumber = number

	updated, err := s.projects.Update(ctx, project)
	if err != nil {
		return nil, err
	}

	s.log.Info("project updated", "project_number", number)
	return updated, nil
}

// GetProject retrieves a project by number.
func (s *AnalyzerService) GetProject(ctx context.Context, number int) (*entity.Project, error) {
	return s.projects.Get(ctx, number)
}

// ListProjects retrieves projects matching the filter.
func (s *AnalyzerService) ListProjects(ctx context.Context, filter repository.ProjectFilter) ([]*entity.Project, error) {
	return s.projects.List(ctx, filter)
}

// CountProjects returns the number of projects matching the filter.
func (s *AnalyzerService) CountProjects(ctx context.Context, filter repository.ProjectFilter) (int, error) {
	return s.projects.Count(ctx, filter)
}

// DeleteProject removes a project by number.
func (s *AnalyzerService) DeleteProject(ctx context.Context, number int) (bool, error) {
	return s.projects.Delete(ctx, number)
}

// NextProjectNumber previews the number the next created project will
// receive.
func (s *AnalyzerService) NextProjectNumber(ctx context.Context) (int, error) {
	return s.projects.NextProjectNumber(ctx)
}

// buildProject assembles and validates a project entity from raw input
// and derives its volume fields.
func (s *AnalyzerService) buildProject(input ProjectInput) (*entity.Project, error) {
	date := s.clock.Now()
	if input.Date != "" {
		parsed, err := time.Parse(entity.DateLayout, input.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	project, err := entity.NewProject(input.ProjectName, input.Designer, input.Description, input.Contact, date)
	if err != nil {
		return nil, err
	}

	wu, err := unit.ParseWeightUnit(input.WeightUnit)
	if err != nil {
		return nil, err
	}
	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}
	if err := project.SetMeasurement(input.Weight, wu, quantity); err != nil {
		return nil, err
	}

	du, err := unit.ParseDimensionUnit(input.DimensionUnit)
	if err != nil {
		return nil, err
	}
	ru, err := unit.ParseVolumeUnit(input.BoxResultUnit)
	if err != nil {
		return nil, err
	}
	if err := project.SetBox(input.BoxLength, input.BoxWidth, input.BoxHeight, du, ru); err != nil {
		return nil, err
	}

	if err := project.RecomputeDerived(s.clock.Now()); err != nil {
		return nil, err
	}
	return project, nil
}
