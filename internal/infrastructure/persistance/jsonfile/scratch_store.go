package jsonfile

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/packlabs/dva-go/internal/domain/repository"
)

// Scratch file names. These hold partially-completed calculator state
// between requests; they are a cache, not canonical data, and are safe
// to delete at any time.
const (
	weightDraftFile = "weight_draft.json"
	boxDraftFile    = "box_draft.json"
)

// ScratchStore is a JSON-file implementation of
// repository.ScratchRepository: single JSON object files, one per
// draft. Absent or corrupt drafts are treated as missing; the
// correctness contract of the canonical stores never depends on them.
type ScratchStore struct {
	dir string
}

// NewScratchStore creates a scratch store rooted at dir.
//
// Parameters:
//   - dir: directory the draft files live in (created if missing)
//
// Returns:
//   - *ScratchStore: the ready store
//   - error: any error creating the directory
func NewScratchStore(dir string) (*ScratchStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ScratchStore{dir: dir}, nil
}

// SaveWeight implements repository.ScratchRepository.
func (s *ScratchStore) SaveWeight(draft repository.WeightDraft) error {
	return writeAtomic(filepath.Join(s.dir, weightDraftFile), draft)
}

// LoadWeight implements repository.ScratchRepository.
func (s *ScratchStore) LoadWeight() (repository.WeightDraft, bool) {
	var draft repository.WeightDraft
	ok := s.loadDraft(weightDraftFile, &draft)
	return draft, ok
}

// SaveBox implements repository.ScratchRepository.
func (s *ScratchStore) SaveBox(draft repository.BoxDraft) error {
	return writeAtomic(filepath.Join(s.dir, boxDraftFile), draft)
}

// LoadBox implements repository.ScratchRepository.
func (s *ScratchStore) LoadBox() (repository.BoxDraft, bool) {
	var draft repository.BoxDraft
	ok := s.loadDraft(boxDraftFile, &draft)
	return draft, ok
}

// Clear implements repository.ScratchRepository.
func (s *ScratchStore) Clear() error {
	for _, name := range []string{weightDraftFile, boxDraftFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// loadDraft reads one draft file, tolerating absence and corruption.
func (s *ScratchStore) loadDraft(name string, dst any) bool {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}
