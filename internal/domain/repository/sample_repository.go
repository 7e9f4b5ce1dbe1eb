package repository

import (
	"context"

	"github.com/packlabs/dva-go/internal/domain/entity"
)

// ImportRow is one raw row handed to a batch import. Weight and unit are
// kept as strings so per-row validation happens inside the import and a
// malformed value skips only its own row.
type ImportRow struct {
	// ID is the raw sample identifier.
	ID string

	// Weight is the raw weight value, parsed as a float during import.
	Weight string

	// Unit is the raw weight unit, matched against the fixed unit set.
	Unit string
}

// ImportSummary reports the outcome of a batch import.
type ImportSummary struct {
	// Imported is the number of rows added to the store.
	Imported int `json:"imported"`

	// Skipped is the number of rows rejected (duplicate ID, unknown
	// unit, or unparseable weight).
	Skipped int `json:"skipped"`
}

// SampleRepository defines the interface for sample persistence operations.
type SampleRepository interface {
	// List retrieves all samples in stored order.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//
	// Returns:
	//   - []entity.Sample: all stored samples
	//   - error: any error encountered during retrieval
	List(ctx context.Context) ([]entity.Sample, error)

	// Add persists a new sample.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - sample: the sample to add
	//
	// Returns:
	//   - error: ErrDuplicateSampleID if the ID is already present
	Add(ctx context.Context, sample entity.Sample) error

	// Remove deletes the sample with the given ID.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - id: the sample ID (exact match)
	//
	// Returns:
	//   - bool: true if a sample was removed
	//   - error: any error encountered during persistence
	Remove(ctx context.Context, id string) (bool, error)

	// ImportBatch adds every valid row and skips every invalid one.
	// A bad row never aborts the batch; the summary reports both counts.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - rows: the raw rows, in order
	//
	// Returns:
	//   - ImportSummary: imported and skipped row counts
	//   - error: only for storage failures, never for per-row problems
	ImportBatch(ctx context.Context, rows []ImportRow) (ImportSummary, error)
}
