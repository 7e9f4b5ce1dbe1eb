package jsonfile

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/packlabs/dva-go/internal/application/port"
	"github.com/packlabs/dva-go/internal/domain/entity"
	"github.com/packlabs/dva-go/internal/domain/repository"
)

// firstProjectNumber is assigned to the first project of an empty store.
const firstProjectNumber = 1000

// ProjectStore is a flat-JSON-file implementation of
// repository.ProjectRepository. The whole collection lives in memory and
// is rewritten to disk on every mutation; a mutex serializes the
// read-modify-write cycles so concurrent callers cannot truncate each
// other's data.
type ProjectStore struct {
	path  string
	log   port.Logger
	clock port.Clock

	mu       sync.Mutex
	projects []*entity.Project
}

// NewProjectStore opens (or initializes) the project collection file.
// A corrupt file is backed up and replaced with an empty collection.
// Persisted derived volume fields are validated against a fresh
// computation; mismatching records are flagged and recomputed rather
// than trusted.
//
// Parameters:
//   - path: the collection file path
//   - log: structured logger
//   - clock: time source for mutation timestamps
//
// Returns:
//   - *ProjectStore: the ready store
//   - error: repository.ErrStorageFailed on unrecoverable I/O failures
func NewProjectStore(path string, log port.Logger, clock port.Clock) (*ProjectStore, error) {
	projects, err := loadOrRecover(path, []*entity.Project{})
	if errors.Is(err, repository.ErrCorruptStorage) {
		log.Warn("project file was corrupt, backed up and reset",
			"path", path,
			"backup", path+backupSuffix,
		)
	} else if err != nil {
		return nil, err
	}

	s := &ProjectStore{
		path:     path,
		log:      log,
		clock:    clock,
		projects: projects,
	}
	s.reconcileDerived()
	return s, nil
}

// reconcileDerived recomputes derived volumes for records whose stored
// values drifted from the conversion tables. The original last-modified
// stamp is preserved; only the volumes are corrected.
func (s *ProjectStore) reconcileDerived() {
	for _, p := range s.projects {
		ok, err := p.DerivedConsistent()
		if err != nil {
			s.log.Warn("project has an unknown unit, leaving record as stored",
				"project_number", p.ProjectNumber,
				"error", err,
			)
			continue
		}
		if ok {
			continue
		}

		s.log.Warn("project derived volumes drifted from raw inputs, recomputing",
			"project_number", p.ProjectNumber,
		)
		lastModified := p.LastModified
		if err := p.RecomputeDerived(s.clock.Now()); err == nil {
			p.LastModified = lastModified
		}
	}
}

// List implements repository.ProjectRepository.
func (s *ProjectStore) List(ctx context.Context, filter repository.ProjectFilter) ([]*entity.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*entity.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if matchesFilter(p, filter) {
			c := *p
			matched = append(matched, &c)
		}
	}

	return paginate(matched, filter.Offset, filter.Limit), nil
}

// Get implements repository.ProjectRepository.
func (s *ProjectStore) Get(ctx context.Context, number int) (*entity.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.projects {
		if p.ProjectNumber == number {
			c := *p
			return &c, nil
		}
	}
	return nil, repository.ErrProjectNotFound
}

// Create implements repository.ProjectRepository.
// A colliding proposed number is replaced with a fresh one; the existing
// project is never overwritten by a create.
func (s *ProjectStore) Create(ctx context.Context, project *entity.Project) (*entity.Project, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reassigned := false
	if project.ProjectNumber <= 0 {
		project.ProjectNumber = s.nextNumberLocked()
	} else if s.existsLocked(project.ProjectNumber) {
		proposed := project.ProjectNumber
		project.ProjectNumber = s.nextNumberLocked()
		reassigned = true
		s.log.Warn("project number collision on create, assigned a new number",
			"proposed", proposed,
			"assigned", project.ProjectNumber,
		)
	}

	stored := *project
	s.projects = append(s.projects, &stored)
	if err := s.persistLocked(); err != nil {
		// Roll back the in-memory append so memory and disk stay in step.
		s.projects = s.projects[:len(s.projects)-1]
		return nil, false, err
	}

	c := stored
	return &c, reassigned, nil
}

// Update implements repository.ProjectRepository.
// The stored record is replaced in full. A number that is no longer in
// the collection (for example after a delete) stores the record as a
// brand-new project under that number.
func (s *ProjectStore) Update(ctx context.Context, project *entity.Project) (*entity.Project, error) {
	if project.ProjectNumber <= 0 {
		return nil, entity.ErrInvalidProjectNumber
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *project
	replaced := false
	var previous *entity.Project
	for i, p := range s.projects {
		if p.ProjectNumber == project.ProjectNumber {
			previous = s.projects[i]
			s.projects[i] = &stored
			replaced = true
			break
		}
	}
	if !replaced {
		s.projects = append(s.projects, &stored)
	}

	if err := s.persistLocked(); err != nil {
		if replaced {
			for i, p := range s.projects {
				if p == &stored {
					s.projects[i] = previous
					break
				}
			}
		} else {
			s.projects = s.projects[:len(s.projects)-1]
		}
		return nil, err
	}

	c := stored
	return &c, nil
}

// Delete implements repository.ProjectRepository.
func (s *ProjectStore) Delete(ctx context.Context, number int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.projects {
		if p.ProjectNumber == number {
			previous := s.projects
			updated := make([]*entity.Project, 0, len(s.projects)-1)
			updated = append(updated, s.projects[:i]...)
			updated = append(updated, s.projects[i+1:]...)
			s.projects = updated

			if err := s.persistLocked(); err != nil {
				// Roll back the removal so memory and disk stay in step.
				s.projects = previous
				return false, err
			}
			s.log.Info("project deleted", "project_number", number)
			return true, nil
		}
	}
	return false, nil
}

// NextProjectNumber implements repository.ProjectRepository.
func (s *ProjectStore) NextProjectNumber(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextNumberLocked(), nil
}

// Count implements repository.ProjectRepository.
func (s *ProjectStore) Count(ctx context.Context, filter repository.ProjectFilter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, p := range s.projects {
		if matchesFilter(p, filter) {
			count++
		}
	}
	return count, nil
}

// nextNumberLocked derives the next project number from the live
// collection: 1000 when empty, else max+1. Never cached, so the
// collection stays the single source of truth.
func (s *ProjectStore) nextNumberLocked() int {
	if len(s.projects) == 0 {
		return firstProjectNumber
	}
	max := 0
	for _, p := range s.projects {
		if p.ProjectNumber > max {
			max = p.ProjectNumber
		}
	}
	if max < firstProjectNumber {
		return firstProjectNumber
	}
	return max + 1
}

// existsLocked checks for a project number in the live collection.
func (s *ProjectStore) existsLocked(number int) bool {
	for _, p := range s.projects {
		if p.ProjectNumber == number {
			return true
		}
	}
	return false
}

// persistLocked rewrites the whole collection file.
func (s *ProjectStore) persistLocked() error {
	return writeAtomic(s.path, s.projects)
}

// matchesFilter applies the filter criteria to one project.
func matchesFilter(p *entity.Project, filter repository.ProjectFilter) bool {
	if filter.Designer != nil && p.Designer != *filter.Designer {
		return false
	}
	if filter.SearchTerm != "" {
		term := strings.ToLower(filter.SearchTerm)
		if !strings.Contains(strings.ToLower(p.ProjectName), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			return false
		}
	}
	return true
}

// paginate applies offset/limit to an already filtered slice.
func paginate(projects []*entity.Project, offset, limit int) []*entity.Project {
	if offset >= len(projects) {
		return []*entity.Project{}
	}
	projects = projects[offset:]
	if limit > 0 && limit < len(projects) {
		projects = projects[:limit]
	}
	return projects
}
