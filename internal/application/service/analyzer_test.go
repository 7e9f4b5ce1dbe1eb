package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlabs/dva-go/internal/application/port"
	"github.com/packlabs/dva-go/internal/domain/calc"
	"github.com/packlabs/dva-go/internal/domain/entity"
	"github.com/packlabs/dva-go/internal/domain/repository"
	"github.com/packlabs/dva-go/internal/domain/unit"
	"github.com/packlabs/dva-go/internal/infrastructure/persistance/jsonfile"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) With(keysAndValues ...interface{}) port.Logger  { return nopLogger{} }
func (nopLogger) WithContext(ctx context.Context) port.Logger    { return nopLogger{} }

func fixedClock() port.Clock {
	return port.ClockFunc(func() time.Time {
		return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	})
}

func newTestService(t *testing.T) *AnalyzerService {
	t.Helper()
	dir := t.TempDir()
	log := nopLogger{}
	clock := fixedClock()

	projects, err := jsonfile.NewProjectStore(filepath.Join(dir, "projects.json"), log, clock)
	require.NoError(t, err)
	samples, err := jsonfile.NewSampleStore(filepath.Join(dir, "samples.json"), log)
	require.NoError(t, err)
	drafts, err := jsonfile.NewScratchStore(filepath.Join(dir, "scratch"))
	require.NoError(t, err)

	return NewAnalyzerService(projects, samples, drafts, clock, log)
}

func validInput() ProjectInput {
	return ProjectInput{
		ProjectName:   "Retail Tray",
		Date:          "2026-03-10",
		Designer:      "Ana",
		Description:   "Six pack tray",
		Contact:       "ana@example.com",
		Weight:        100,
		WeightUnit:    "grams",
		Quantity:      2,
		BoxLength:     10,
		BoxWidth:      10,
		BoxHeight:     10,
		DimensionUnit: "cm",
		BoxResultUnit: "cubic cm",
	}
}

func TestConvertWeight(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.ConvertWeight(ctx, 100, "grams", 3)
	require.NoError(t, err)
	assert.InDelta(t, 100000.0, result.Volume.MM3, 1e-9)
	assert.InDelta(t, 100.0, result.Volume.CM3, 1e-9)
	assert.Equal(t, 3, result.Quantity)
	assert.InDelta(t, 300000.0, result.TotalVolumeMM3, 1e-9)
}

func TestConvertWeightDefaultsQuantity(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.ConvertWeight(context.Background(), 50, "grams", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Quantity)
	assert.InDelta(t, result.Volume.MM3, result.TotalVolumeMM3, 1e-9)
}

func TestConvertWeightRejectsBadInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.ConvertWeight(ctx, -1, "grams", 1)
	assert.ErrorIs(t, err, entity.ErrNegativeWeight)

	_, err = svc.ConvertWeight(ctx, 10, "stones", 1)
	assert.ErrorIs(t, err, unit.ErrInvalidUnit)
}

func TestComputeBoxVolume(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.ComputeBoxVolume(context.Background(), 10, 10, 10, "cm", "cubic cm")
	require.NoError(t, err)
	assert.InDelta(t, 1000000.0, result.VolumeMM3, 1e-6)
	assert.InDelta(t, 1000.0, result.Volume, 1e-9)
	assert.Equal(t, unit.CubicCM, result.ResultUnit)
}

func TestComputeBoxVolumeRejectsNegativeDimension(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ComputeBoxVolume(context.Background(), -1, 10, 10, "cm", "cubic cm")
	assert.ErrorIs(t, err, entity.ErrNegativeDimension)
}

func TestAnalyze(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Analyze(context.Background(), 900000, 1000000, "cubic cm")
	require.NoError(t, err)
	assert.InDelta(t, 90.0, result.Efficiency.EfficiencyPct, 1e-9)
	assert.Equal(t, calc.TierExcellent, result.Efficiency.Tier)
	assert.InDelta(t, 100000.0, result.RemainingVolumeMM3, 1e-9)
	assert.InDelta(t, 100.0, result.RemainingVolume, 1e-9)
	assert.InDelta(t, 900.0, result.ProductVolume, 1e-9)
	assert.InDelta(t, 1000.0, result.BoxVolume, 1e-9)
}

func TestAnalyzeOverflow(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Analyze(context.Background(), 1500000, 1000000, "cubic cm")
	require.NoError(t, err)
	assert.True(t, result.Efficiency.IsOverflow())
	assert.InDelta(t, -500000.0, result.RemainingVolumeMM3, 1e-9)
}

func TestSampleLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sample, err := svc.AddSample(ctx, "Widget-A", 150, "grams")
	require.NoError(t, err)
	assert.Equal(t, "Widget-A", sample.ID)

	_, err = svc.AddSample(ctx, "Widget-A", 200, "grams")
	assert.ErrorIs(t, err, repository.ErrDuplicateSampleID)

	results, err := svc.ListSampleResults(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 150000.0, results[0].Volume.MM3, 1e-9)

	removed, err := svc.RemoveSample(ctx, "Widget-A")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemoveSample(ctx, "Widget-A")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCreateProject(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	project, reassigned, err := svc.CreateProject(ctx, validInput())
	require.NoError(t, err)
	assert.False(t, reassigned)
	assert.Equal(t, 1000, project.ProjectNumber)
	assert.Equal(t, "2026-03-10", project.Date)
	assert.InDelta(t, 100000.0, project.PrimaryVolumeMM3, 1e-9)
	assert.InDelta(t, 200000.0, project.TotalProductVolumeMM3, 1e-9)
	assert.InDelta(t, 1000000.0, project.BoxVolumeMM3, 1e-6)
	assert.Equal(t, "2026-03-14 09:30:00", project.LastModified)
}

func TestCreateProjectDefaultsDateToToday(t *testing.T) {
	svc := newTestService(t)

	input := validInput()
	input.Date = ""
	project, _, err := svc.CreateProject(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", project.Date)
}

func TestCreateProjectReassignsTakenNumber(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, _, err := svc.CreateProject(ctx, validInput())
	require.NoError(t, err)

	input := validInput()
	input.ProjectName = "Second Tray"
	input.ProposedNumber = first.ProjectNumber
	second, reassigned, err := svc.CreateProject(ctx, input)
	require.NoError(t, err)
	assert.True(t, reassigned)
	assert.Equal(t, 1001, second.ProjectNumber)
}

func TestCreateProjectRejectsInvalidInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	input := validInput()
	input.ProjectName = "  "
	_, _, err := svc.CreateProject(ctx, input)
	assert.ErrorIs(t, err, entity.ErrInvalidProjectName)

	input = validInput()
	input.WeightUnit = "stones"
	_, _, err = svc.CreateProject(ctx, input)
	assert.ErrorIs(t, err, unit.ErrInvalidUnit)

	input = validInput()
	input.Date = "14/03/2026"
	_, _, err = svc.CreateProject(ctx, input)
	assert.Error(t, err)
}

func TestUpdateProject(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, _, err := svc.CreateProject(ctx, validInput())
	require.NoError(t, err)

	input := validInput()
	input.Weight = 250
	updated, err := svc.UpdateProject(ctx, created.ProjectNumber, input)
	require.NoError(t, err)
	assert.Equal(t, created.ProjectNumber, updated.ProjectNumber)
	assert.InDelta(t, 250000.0, updated.PrimaryVolumeMM3, 1e-9)

	stored, err := svc.GetProject(ctx, created.ProjectNumber)
	require.NoError(t, err)
	assert.InDelta(t, 250.0, stored.Weight, 1e-9)
}

func TestUpdateProjectRequiresNumber(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.UpdateProject(context.Background(), 0, validInput())
	assert.ErrorIs(t, err, entity.ErrInvalidProjectNumber)
}

func TestDraftsFollowCalculatorState(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	assert.Nil(t, svc.Drafts().Weight)
	assert.Nil(t, svc.Drafts().Box)

	_, err := svc.ConvertWeight(ctx, 100, "grams", 2)
	require.NoError(t, err)
	_, err = svc.ComputeBoxVolume(ctx, 10, 10, 10, "cm", "cubic cm")
	require.NoError(t, err)

	state := svc.Drafts()
	require.NotNil(t, state.Weight)
	assert.InDelta(t, 100.0, state.Weight.Weight, 1e-9)
	assert.Equal(t, 2, state.Weight.Quantity)
	require.NotNil(t, state.Box)
	assert.Equal(t, unit.Centimeters, state.Box.Unit)

	// Saving a project consumes the scratch state.
	_, _, err = svc.CreateProject(ctx, validInput())
	require.NoError(t, err)
	assert.Nil(t, svc.Drafts().Weight)
	assert.Nil(t, svc.Drafts().Box)
}

func TestProjectListingAndDeletion(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Tray A", "Tray B", "Tray C"} {
		input := validInput()
		input.ProjectName = name
		_, _, err := svc.CreateProject(ctx, input)
		require.NoError(t, err)
	}

	all, err := svc.ListProjects(ctx, repository.ProjectFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	count, err := svc.CountProjects(ctx, repository.ProjectFilter{SearchTerm: "tray b"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	deleted, err := svc.DeleteProject(ctx, 1001)
	require.NoError(t, err)
	assert.True(t, deleted)

	next, err := svc.NextProjectNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1003, next)
}
