// Package repository contains the repository interfaces (ports) for data access.
package repository

import (
	"context"

	"github.com/packlabs/dva-go/internal/domain/entity"
)

// ProjectFilter contains criteria for filtering projects.
type ProjectFilter struct {
	// Designer filters projects by exact designer name.
	Designer *string

	// SearchTerm searches in project name and description.
	SearchTerm string

	// Limit specifies the maximum number of results (0 means no limit).
	Limit int

	// Offset specifies the starting position for pagination.
	Offset int
}

// ProjectRepository defines the interface for project persistence operations.
// It abstracts the data access layer for project records.
//
// The stored collection is the single source of truth: implementations
// must derive the next project number from the live collection rather
// than a cached counter, so external edits to the storage file can never
// drift the numbering.
//
// Example usage:
//
//	store, err := jsonfile.NewProjectStore(path, log)
//	next, err := store.NextProjectNumber(ctx)
type ProjectRepository interface {
	// List retrieves projects matching the given filter criteria in
	// stored order.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - filter: criteria to filter projects
	//
	// Returns:
	//   - []*entity.Project: list of matching projects
	//   - error: any error encountered during retrieval
	List(ctx context.Context, filter ProjectFilter) ([]*entity.Project, error)

	// Get retrieves a project by its unique number.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - number: the project number
	//
	// Returns:
	//   - *entity.Project: the retrieved project
	//   - error: ErrProjectNotFound if no project has that number
	Get(ctx context.Context, number int) (*entity.Project, error)

	// Create persists a new project and rewrites the whole collection.
	// A project without a number (zero) is assigned the next available
	// one. A proposed number colliding with an existing record is
	// replaced with a fresh number rather than overwriting the existing
	// project; the bool result reports that a reassignment happened so
	// the caller can surface a warning.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - project: the project to create (number is updated in place)
	//
	// Returns:
	//   - *entity.Project: the created project with its final number
	//   - bool: true if the number was reassigned due to a collision
	//   - error: any error encountered during persistence
	Create(ctx context.Context, project *entity.Project) (*entity.Project, bool, error)

	// Update replaces the stored record with the same number in full
	// (overwrite, not field-merge) and rewrites the collection. Updating
	// a number that is no longer present stores the record as a brand-new
	// one under that number; a deleted record is never resurrected, the
	// incoming values simply become a new saved project.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - project: the project to update (must have a positive number)
	//
	// Returns:
	//   - *entity.Project: the stored project
	//   - error: entity.ErrInvalidProjectNumber if the number is unset
	Update(ctx context.Context, project *entity.Project) (*entity.Project, error)

	// Delete removes the project with the given number and persists the
	// remaining collection.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - number: the project number
	//
	// Returns:
	//   - bool: true if a record was removed
	//   - error: any error encountered during persistence
	Delete(ctx context.Context, number int) (bool, error)

	// NextProjectNumber returns the number the next created project will
	// receive: 1000 for an empty store, else max(existing)+1. Freed
	// numbers are never reused. Recomputed from the live collection on
	// every call.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//
	// Returns:
	//   - int: the next available project number
	//   - error: any error encountered reading the collection
	NextProjectNumber(ctx context.Context) (int, error)

	// Count returns the total number of projects matching the filter.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - filter: criteria to filter projects
	//
	// Returns:
	//   - int: count of matching projects
	//   - error: any error encountered during counting
	Count(ctx context.Context, filter ProjectFilter) (int, error)
}
