package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlabs/dva-go/internal/domain/calc"
	"github.com/packlabs/dva-go/internal/domain/entity"
	"github.com/packlabs/dva-go/internal/domain/unit"
)

func newTestProject(t *testing.T) *entity.Project {
	t.Helper()
	p, err := entity.NewProject("Bottle Redesign", "A. Rivera", "500ml bottle", "ar@example.com",
		time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return p
}

func TestNewProjectDefaults(t *testing.T) {
	p := newTestProject(t)

	assert.Equal(t, "2026-03-14", p.Date)
	assert.Equal(t, 1, p.ProductQuantity)
	assert.False(t, p.IsSaved())
}

func TestNewProjectRequiresName(t *testing.T) {
	_, err := entity.NewProject("", "d", "", "", time.Now())
	assert.ErrorIs(t, err, entity.ErrInvalidProjectName)
}

func TestSetMeasurementValidation(t *testing.T) {
	p := newTestProject(t)

	assert.ErrorIs(t, p.SetMeasurement(-1, unit.Grams, 1), entity.ErrNegativeWeight)
	assert.ErrorIs(t, p.SetMeasurement(1, unit.Grams, 0), entity.ErrInvalidQuantity)
	assert.ErrorIs(t, p.SetMeasurement(1, unit.WeightUnit("stones"), 1), unit.ErrInvalidUnit)
	assert.NoError(t, p.SetMeasurement(100, unit.Grams, 2))
}

func TestSetBoxValidation(t *testing.T) {
	p := newTestProject(t)

	assert.ErrorIs(t, p.SetBox(-1, 1, 1, unit.Centimeters, unit.CubicCM), entity.ErrNegativeDimension)
	assert.ErrorIs(t, p.SetBox(1, 1, 1, unit.DimensionUnit("m"), unit.CubicCM), unit.ErrInvalidUnit)
	// Zero dimensions describe an unmeasured box and are accepted.
	assert.NoError(t, p.SetBox(0, 0, 0, unit.Centimeters, unit.CubicCM))
}

func TestRecomputeDerived(t *testing.T) {
	p := newTestProject(t)
	require.NoError(t, p.SetMeasurement(100, unit.Grams, 3))
	require.NoError(t, p.SetBox(10, 10, 10, unit.Centimeters, unit.CubicCM))

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	require.NoError(t, p.RecomputeDerived(now))

	assert.Equal(t, 100000.0, p.PrimaryVolumeMM3)
	assert.Equal(t, 300000.0, p.TotalProductVolumeMM3)
	assert.Equal(t, 1000000.0, p.BoxVolumeMM3)
	assert.Equal(t, "2026-03-14 09:30:00", p.LastModified)

	ok, err := p.DerivedConsistent()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDerivedConsistentDetectsDrift(t *testing.T) {
	p := newTestProject(t)
	require.NoError(t, p.SetMeasurement(100, unit.Grams, 1))
	require.NoError(t, p.RecomputeDerived(time.Now()))

	p.PrimaryVolumeMM3 = 42 // simulate a stale persisted value

	ok, err := p.DerivedConsistent()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProjectEfficiency(t *testing.T) {
	p := newTestProject(t)
	require.NoError(t, p.SetMeasurement(100, unit.Grams, 1))
	require.NoError(t, p.SetBox(10, 10, 10, unit.Centimeters, unit.CubicCM))
	require.NoError(t, p.RecomputeDerived(time.Now()))

	eff := p.Efficiency()
	assert.Equal(t, 10.0, eff.EfficiencyPct)
	assert.Equal(t, 90.0, eff.RemainingPct)
	assert.Equal(t, calc.TierCritical, eff.Tier)
}

func TestNewSample(t *testing.T) {
	s, err := entity.NewSample(" Sample-001 ", 150, unit.Grams)
	require.NoError(t, err)
	assert.Equal(t, "Sample-001", s.ID)

	vs, err := s.Volume()
	require.NoError(t, err)
	assert.Equal(t, 150000.0, vs.MM3)

	_, err = entity.NewSample("  ", 1, unit.Grams)
	assert.ErrorIs(t, err, entity.ErrEmptySampleID)

	_, err = entity.NewSample("s", -1, unit.Grams)
	assert.ErrorIs(t, err, entity.ErrNegativeSampleWeight)

	_, err = entity.NewSample("s", 1, unit.WeightUnit("bad"))
	assert.ErrorIs(t, err, unit.ErrInvalidUnit)
}
