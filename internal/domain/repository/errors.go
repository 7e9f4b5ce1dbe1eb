// Package repository contains the repository interfaces and related errors.
package repository

import "errors"

// Repository errors define common error conditions across all repositories.
// These errors are used to communicate specific failure conditions
// from the data access layer to the application layer.

var (
	// ErrProjectNotFound is returned when a project cannot be found by number.
	ErrProjectNotFound = errors.New("project not found")

	// ErrSampleNotFound is returned when a sample cannot be found by ID.
	ErrSampleNotFound = errors.New("sample not found")

	// ErrDuplicateSampleID is returned when trying to add a sample with
	// an ID that already exists. Matching is exact (case-sensitive).
	ErrDuplicateSampleID = errors.New("sample ID already exists")

	// ErrDuplicateProjectNumber is returned when a save would collide with
	// an existing project number. The project store recovers from this
	// transparently by assigning a fresh number, so callers normally only
	// see it surfaced as a warning.
	ErrDuplicateProjectNumber = errors.New("project number already exists")

	// ErrCorruptStorage is returned when a store file cannot be parsed.
	// Load recovers from it by backing the bad file aside and substituting
	// an empty collection, so it never reaches callers as a fatal error.
	ErrCorruptStorage = errors.New("storage file is corrupt")

	// ErrStorageFailed is returned when a read or write against the
	// underlying storage file fails.
	ErrStorageFailed = errors.New("storage operation failed")
)

// IsNotFoundError checks if the error is a not found error.
// This is useful for handling not-found cases uniformly.
//
// Parameters:
//   - err: error to check
//
// Returns:
//   - bool: true if the error indicates a record was not found
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrSampleNotFound)
}

// IsDuplicateError checks if the error is a duplicate entry error.
//
// Parameters:
//   - err: error to check
//
// Returns:
//   - bool: true if the error indicates a duplicate key violation
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicateSampleID) ||
		errors.Is(err, ErrDuplicateProjectNumber)
}
