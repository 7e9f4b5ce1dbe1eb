package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlabs/dva-go/internal/domain/entity"
	"github.com/packlabs/dva-go/internal/domain/repository"
	"github.com/packlabs/dva-go/internal/domain/unit"
)

func newSampleStore(t *testing.T) (*SampleStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "samples.json")
	store, err := NewSampleStore(path, nopLogger{})
	require.NoError(t, err)
	return store, path
}

func mustSample(t *testing.T, id string, weight float64, u unit.WeightUnit) entity.Sample {
	t.Helper()
	s, err := entity.NewSample(id, weight, u)
	require.NoError(t, err)
	return s
}

func TestAddAndListSamples(t *testing.T) {
	ctx := context.Background()
	store, _ := newSampleStore(t)

	require.NoError(t, store.Add(ctx, mustSample(t, "Sample-001", 150, unit.Grams)))
	require.NoError(t, store.Add(ctx, mustSample(t, "Sample-002", 5.5, unit.Ounces)))

	samples, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, "Sample-001", samples[0].ID)
}

func TestAddDuplicateID(t *testing.T) {
	ctx := context.Background()
	store, _ := newSampleStore(t)

	require.NoError(t, store.Add(ctx, mustSample(t, "Sample-001", 150, unit.Grams)))

	err := store.Add(ctx, mustSample(t, "Sample-001", 99, unit.Ounces))
	assert.ErrorIs(t, err, repository.ErrDuplicateSampleID)
	assert.True(t, repository.IsDuplicateError(err))
}

func TestDuplicateCheckIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	store, _ := newSampleStore(t)

	require.NoError(t, store.Add(ctx, mustSample(t, "Sample-001", 150, unit.Grams)))
	// Different case is a different ID by contract.
	assert.NoError(t, store.Add(ctx, mustSample(t, "SAMPLE-001", 150, unit.Grams)))
}

func TestRemoveSample(t *testing.T) {
	ctx := context.Background()
	store, _ := newSampleStore(t)

	require.NoError(t, store.Add(ctx, mustSample(t, "Sample-001", 150, unit.Grams)))

	removed, err := store.Remove(ctx, "Sample-001")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Remove(ctx, "Sample-001")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRemoveRollsBackWhenPersistFails(t *testing.T) {
	ctx := context.Background()
	store, path := newSampleStore(t)

	require.NoError(t, store.Add(ctx, mustSample(t, "Sample-001", 150, unit.Grams)))

	// Removing the directory makes the atomic write fail, so the
	// in-memory removal must be rolled back.
	require.NoError(t, os.RemoveAll(filepath.Dir(path)))

	removed, err := store.Remove(ctx, "Sample-001")
	require.ErrorIs(t, err, repository.ErrStorageFailed)
	assert.False(t, removed)

	samples, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, "Sample-001", samples[0].ID)
}

func TestImportBatchSkipsBadRowsWithoutAborting(t *testing.T) {
	ctx := context.Background()
	store, _ := newSampleStore(t)

	require.NoError(t, store.Add(ctx, mustSample(t, "Sample-001", 150, unit.Grams)))

	rows := []repository.ImportRow{
		{ID: "Sample-001", Weight: "120", Unit: "grams"},   // duplicate ID
		{ID: "Sample-010", Weight: "3.5", Unit: "stones"},  // invalid unit
		{ID: "Sample-011", Weight: "heavy", Unit: "grams"}, // bad weight
		{ID: "Sample-012", Weight: "42", Unit: "Grams"},    // valid (unit case-folded)
		{ID: "Sample-013", Weight: "0.5", Unit: "pounds"},  // valid
	}

	summary, err := store.ImportBatch(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 3, summary.Skipped)

	samples, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, samples, 3)
}

func TestImportBatchDuplicateWithinBatch(t *testing.T) {
	ctx := context.Background()
	store, _ := newSampleStore(t)

	rows := []repository.ImportRow{
		{ID: "Sample-001", Weight: "100", Unit: "grams"},
		{ID: "Sample-001", Weight: "200", Unit: "grams"},
	}

	summary, err := store.ImportBatch(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 1, summary.Skipped)

	samples, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, 100.0, samples[0].Weight)
}

func TestSamplePersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, path := newSampleStore(t)

	require.NoError(t, store.Add(ctx, mustSample(t, "Sample-001", 150, unit.Grams)))

	reopened, err := NewSampleStore(path, nopLogger{})
	require.NoError(t, err)

	samples, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, unit.Grams, samples[0].Unit)
}

func TestSampleCorruptFileBackedUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.json")
	corrupt := []byte(`[{"id": "Sample-001", "weight":`)
	require.NoError(t, os.WriteFile(path, corrupt, 0o644))

	store, err := NewSampleStore(path, nopLogger{})
	require.NoError(t, err)

	samples, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, samples)

	backup, err := os.ReadFile(path + ".backup")
	require.NoError(t, err)
	assert.Equal(t, corrupt, backup)
}

func TestSeedDefaults(t *testing.T) {
	ctx := context.Background()
	store, _ := newSampleStore(t)

	require.NoError(t, store.SeedDefaults(ctx))

	samples, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, samples, 5)

	// Seeding is a no-op on a non-empty store.
	require.NoError(t, store.SeedDefaults(ctx))
	samples, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, samples, 5)
}

func TestSeedDefaultsSkippedWhenDataExists(t *testing.T) {
	ctx := context.Background()
	store, _ := newSampleStore(t)

	require.NoError(t, store.Add(ctx, mustSample(t, "Mine", 1, unit.Grams)))
	require.NoError(t, store.SeedDefaults(ctx))

	samples, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, samples, 1)
}
