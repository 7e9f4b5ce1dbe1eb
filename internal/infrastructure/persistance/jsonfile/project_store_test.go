package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlabs/dva-go/internal/domain/entity"
	"github.com/packlabs/dva-go/internal/domain/repository"
	"github.com/packlabs/dva-go/internal/domain/unit"
)

func newProjectStore(t *testing.T) (*ProjectStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.json")
	store, err := NewProjectStore(path, nopLogger{}, fixedClock())
	require.NoError(t, err)
	return store, path
}

func testProject(t *testing.T, name string) *entity.Project {
	t.Helper()
	p, err := entity.NewProject(name, "A. Rivera", "test project", "ar@example.com",
		time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, p.SetMeasurement(100, unit.Grams, 1))
	require.NoError(t, p.SetBox(10, 10, 10, unit.Centimeters, unit.CubicCM))
	require.NoError(t, p.RecomputeDerived(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))
	return p
}

func TestNextProjectNumberEmptyStore(t *testing.T) {
	store, _ := newProjectStore(t)

	next, err := store.NextProjectNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1000, next)
}

func TestCreateAssignsSequentialNumbers(t *testing.T) {
	ctx := context.Background()
	store, _ := newProjectStore(t)

	first, reassigned, err := store.Create(ctx, testProject(t, "first"))
	require.NoError(t, err)
	assert.False(t, reassigned)
	assert.Equal(t, 1000, first.ProjectNumber)

	next, err := store.NextProjectNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1001, next)
}

func TestNextNumberIsMaxBasedNotReuse(t *testing.T) {
	ctx := context.Background()
	store, _ := newProjectStore(t)

	for i := 0; i < 3; i++ {
		_, _, err := store.Create(ctx, testProject(t, "p"))
		require.NoError(t, err)
	}

	removed, err := store.Delete(ctx, 1001)
	require.NoError(t, err)
	assert.True(t, removed)

	next, err := store.NextProjectNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1003, next)
}

func TestCreateCollisionReassignsNumber(t *testing.T) {
	ctx := context.Background()
	store, _ := newProjectStore(t)

	existing, _, err := store.Create(ctx, testProject(t, "existing"))
	require.NoError(t, err)
	require.Equal(t, 1000, existing.ProjectNumber)

	colliding := testProject(t, "colliding")
	colliding.ProjectNumber = 1000

	created, reassigned, err := store.Create(ctx, colliding)
	require.NoError(t, err)
	assert.True(t, reassigned)
	assert.Equal(t, 1001, created.ProjectNumber)

	// The existing project is untouched.
	got, err := store.Get(ctx, 1000)
	require.NoError(t, err)
	assert.Equal(t, "existing", got.ProjectName)
}

func TestUpdateReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	store, _ := newProjectStore(t)

	created, _, err := store.Create(ctx, testProject(t, "before"))
	require.NoError(t, err)

	created.ProjectName = "after"
	created.Designer = "B. Chen"
	updated, err := store.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, created.ProjectNumber, updated.ProjectNumber)

	got, err := store.Get(ctx, created.ProjectNumber)
	require.NoError(t, err)
	assert.Equal(t, "after", got.ProjectName)
	assert.Equal(t, "B. Chen", got.Designer)

	count, err := store.Count(ctx, repository.ProjectFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdateAfterDeleteStoresAsNew(t *testing.T) {
	ctx := context.Background()
	store, _ := newProjectStore(t)

	created, _, err := store.Create(ctx, testProject(t, "doomed"))
	require.NoError(t, err)

	removed, err := store.Delete(ctx, created.ProjectNumber)
	require.NoError(t, err)
	require.True(t, removed)

	_, err = store.Update(ctx, created)
	require.NoError(t, err)

	got, err := store.Get(ctx, created.ProjectNumber)
	require.NoError(t, err)
	assert.Equal(t, "doomed", got.ProjectName)
}

func TestUpdateRequiresNumber(t *testing.T) {
	store, _ := newProjectStore(t)

	p := testProject(t, "unsaved")
	_, err := store.Update(context.Background(), p)
	assert.ErrorIs(t, err, entity.ErrInvalidProjectNumber)
}

func TestGetNotFound(t *testing.T) {
	store, _ := newProjectStore(t)

	_, err := store.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, repository.ErrProjectNotFound)
	assert.True(t, repository.IsNotFoundError(err))
}

func TestDeleteMissingReturnsFalse(t *testing.T) {
	store, _ := newProjectStore(t)

	removed, err := store.Delete(context.Background(), 1234)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDeleteRollsBackWhenPersistFails(t *testing.T) {
	ctx := context.Background()
	store, path := newProjectStore(t)

	created, _, err := store.Create(ctx, testProject(t, "kept"))
	require.NoError(t, err)

	// Removing the directory makes the atomic write fail, so the
	// in-memory removal must be rolled back.
	require.NoError(t, os.RemoveAll(filepath.Dir(path)))

	removed, err := store.Delete(ctx, created.ProjectNumber)
	require.ErrorIs(t, err, repository.ErrStorageFailed)
	assert.False(t, removed)

	got, err := store.Get(ctx, created.ProjectNumber)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.ProjectName)

	all, err := store.List(ctx, repository.ProjectFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	store, _ := newProjectStore(t)

	a := testProject(t, "Bottle Redesign")
	a.Designer = "A. Rivera"
	b := testProject(t, "Crate Layout")
	b.Designer = "B. Chen"
	for _, p := range []*entity.Project{a, b} {
		_, _, err := store.Create(ctx, p)
		require.NoError(t, err)
	}

	designer := "B. Chen"
	got, err := store.List(ctx, repository.ProjectFilter{Designer: &designer})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Crate Layout", got[0].ProjectName)

	got, err = store.List(ctx, repository.ProjectFilter{SearchTerm: "bottle"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bottle Redesign", got[0].ProjectName)

	got, err = store.List(ctx, repository.ProjectFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Crate Layout", got[0].ProjectName)
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, path := newProjectStore(t)

	created, _, err := store.Create(ctx, testProject(t, "persisted"))
	require.NoError(t, err)

	reopened, err := NewProjectStore(path, nopLogger{}, fixedClock())
	require.NoError(t, err)

	got, err := reopened.Get(ctx, created.ProjectNumber)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.ProjectName)
	assert.Equal(t, 1000000.0, got.BoxVolumeMM3)
}

func TestFileIsPrettyPrinted(t *testing.T) {
	ctx := context.Background()
	store, path := newProjectStore(t)

	_, _, err := store.Create(ctx, testProject(t, "pretty"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {")
	assert.Contains(t, string(data), `"project_number": 1000`)
}

func TestMissingFileInitializesEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")

	_, err := NewProjectStore(path, nopLogger{}, fixedClock())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestCorruptFileBackedUpAndReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	corrupt := []byte("{not json at all")
	require.NoError(t, os.WriteFile(path, corrupt, 0o644))

	store, err := NewProjectStore(path, nopLogger{}, fixedClock())
	require.NoError(t, err)

	projects, err := store.List(context.Background(), repository.ProjectFilter{})
	require.NoError(t, err)
	assert.Empty(t, projects)

	backup, err := os.ReadFile(path + ".backup")
	require.NoError(t, err)
	assert.Equal(t, corrupt, backup)
}

func TestLoadRecomputesDriftedDerivedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")

	p := testProject(t, "drifted")
	p.ProjectNumber = 1000
	p.PrimaryVolumeMM3 = 42 // stale persisted value
	p.TotalProductVolumeMM3 = 42

	data, err := json.MarshalIndent([]*entity.Project{p}, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	store, err := NewProjectStore(path, nopLogger{}, fixedClock())
	require.NoError(t, err)

	got, err := store.Get(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, 100000.0, got.PrimaryVolumeMM3)
	assert.Equal(t, 100000.0, got.TotalProductVolumeMM3)
	// The original timestamp survives the reconciliation.
	assert.Equal(t, "2026-03-14 09:00:00", got.LastModified)
}
