package jsonfile

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/packlabs/dva-go/internal/application/port"
	"github.com/packlabs/dva-go/internal/domain/entity"
	"github.com/packlabs/dva-go/internal/domain/repository"
	"github.com/packlabs/dva-go/internal/domain/unit"
)

// SampleStore is a flat-JSON-file implementation of
// repository.SampleRepository. Samples are an unordered flat list with
// exact-match (case-sensitive) ID uniqueness enforced at insertion.
type SampleStore struct {
	path string
	log  port.Logger

	mu      sync.Mutex
	samples []entity.Sample
}

// NewSampleStore opens (or initializes) the sample collection file,
// applying the same recovery pattern as the project store: missing file
// becomes an empty list, corrupt file is backed up aside.
//
// Parameters:
//   - path: the collection file path
//   - log: structured logger
//
// Returns:
//   - *SampleStore: the ready store
//   - error: repository.ErrStorageFailed on unrecoverable I/O failures
func NewSampleStore(path string, log port.Logger) (*SampleStore, error) {
	samples, err := loadOrRecover(path, []entity.Sample{})
	if errors.Is(err, repository.ErrCorruptStorage) {
		log.Warn("sample file was corrupt, backed up and reset",
			"path", path,
			"backup", path+backupSuffix,
		)
	} else if err != nil {
		return nil, err
	}

	return &SampleStore{
		path:    path,
		log:     log,
		samples: samples,
	}, nil
}

// SeedDefaults fills an empty store with the canonical demo samples.
// A store that already holds data is left untouched.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//
// Returns:
//   - error: any error encountered during persistence
func (s *SampleStore) SeedDefaults(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.samples) > 0 {
		return nil
	}

	s.samples = []entity.Sample{
		{ID: "Sample-001", Weight: 150, Unit: unit.Grams},
		{ID: "Sample-002", Weight: 5.5, Unit: unit.Ounces},
		{ID: "Sample-003", Weight: 2.3, Unit: unit.Pounds},
		{ID: "Sample-004", Weight: 0.75, Unit: unit.Kilograms},
		{ID: "Sample-005", Weight: 250, Unit: unit.Grams},
	}
	if err := s.persistLocked(); err != nil {
		s.samples = nil
		return err
	}
	s.log.Info("sample store seeded with demo data", "count", len(s.samples))
	return nil
}

// List implements repository.SampleRepository.
func (s *SampleStore) List(ctx context.Context) ([]entity.Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Sample, len(s.samples))
	copy(out, s.samples)
	return out, nil
}

// Add implements repository.SampleRepository.
func (s *SampleStore) Add(ctx context.Context, sample entity.Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.existsLocked(sample.ID) {
		return repository.ErrDuplicateSampleID
	}

	s.samples = append(s.samples, sample)
	if err := s.persistLocked(); err != nil {
		s.samples = s.samples[:len(s.samples)-1]
		return err
	}
	return nil
}

// Remove implements repository.SampleRepository.
func (s *SampleStore) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sample := range s.samples {
		if sample.ID == id {
			previous := s.samples
			updated := make([]entity.Sample, 0, len(s.samples)-1)
			updated = append(updated, s.samples[:i]...)
			updated = append(updated, s.samples[i+1:]...)
			s.samples = updated

			if err := s.persistLocked(); err != nil {
				// Roll back the removal so memory and disk stay in step.
				s.samples = previous
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// ImportBatch implements repository.SampleRepository.
// Every row is validated independently: duplicate IDs (against the
// store and earlier rows of the same batch), units outside the fixed
// weight set, and unparseable weights each skip their own row without
// aborting the batch. The collection is persisted once at the end.
func (s *SampleStore) ImportBatch(ctx context.Context, rows []repository.ImportRow) (repository.ImportSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var summary repository.ImportSummary
	appended := 0

	for _, row := range rows {
		sample, ok := s.importRowLocked(row)
		if !ok {
			summary.Skipped++
			continue
		}
		s.samples = append(s.samples, sample)
		appended++
		summary.Imported++
	}

	if appended > 0 {
		if err := s.persistLocked(); err != nil {
			s.samples = s.samples[:len(s.samples)-appended]
			return repository.ImportSummary{}, err
		}
	}

	s.log.Info("sample batch import finished",
		"imported", summary.Imported,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

// importRowLocked validates one raw row and converts it into a sample.
func (s *SampleStore) importRowLocked(row repository.ImportRow) (entity.Sample, bool) {
	id := strings.TrimSpace(row.ID)
	if id == "" || s.existsLocked(id) {
		return entity.Sample{}, false
	}

	u, err := unit.ParseWeightUnit(row.Unit)
	if err != nil {
		return entity.Sample{}, false
	}

	weight, err := strconv.ParseFloat(strings.TrimSpace(row.Weight), 64)
	if err != nil {
		return entity.Sample{}, false
	}

	sample, err := entity.NewSample(id, weight, u)
	if err != nil {
		return entity.Sample{}, false
	}
	return sample, true
}

// existsLocked checks for a sample ID with exact-match comparison.
func (s *SampleStore) existsLocked(id string) bool {
	for _, sample := range s.samples {
		if sample.ID == id {
			return true
		}
	}
	return false
}

// persistLocked rewrites the whole collection file.
func (s *SampleStore) persistLocked() error {
	return writeAtomic(s.path, s.samples)
}
