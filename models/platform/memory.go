package platform

import (
	"sort"
	"strings"
	"sync"

	"github.com/juju/errors"

	"github.com/gamegeeks/gamegeeks/pkg/utils"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps platforms in process memory.
// It is used when no database is configured.
type MemoryStore struct {
	mu        sync.RWMutex
	platforms map[string]*Platform
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{platforms: make(map[string]*Platform)}
}

// List implements Store
func (s *MemoryStore) List(pageSize uint64, last *string) ([]*Platform, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.platforms))
	for id := range s.platforms {
		if last != nil && strings.Compare(id, *last) <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if uint64(len(ids)) > pageSize {
		ids = ids[:pageSize]
	}

	pp := make([]*Platform, 0, len(ids))
	for _, id := range ids {
		cpy := *s.platforms[id]
		pp = append(pp, &cpy)
	}
	return pp, nil
}

// Load implements Store
func (s *MemoryStore) Load(id string) (*Platform, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.platforms[id]
	if !ok {
		return nil, errors.NotFoundf("No such platform: %s", id)
	}
	cpy := *p
	return &cpy, nil
}

// Create implements Store
func (s *MemoryStore) Create(name, description string) (*Platform, error) {
	p := &Platform{
		ID:          NewID(),
		Name:        name,
		Description: description,
	}
	p.Normalize()
	if err := p.Valid(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkNameLocked("", p.Name); err != nil {
		return nil, err
	}
	s.platforms[p.ID] = p

	cpy := *p
	return &cpy, nil
}

// Update implements Store
func (s *MemoryStore) Update(p *Platform) error {
	p.Normalize()
	if err := p.Valid(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.platforms[p.ID]; !ok {
		return errors.NotFoundf("No such platform to update: %s", p.ID)
	}
	if err := s.checkNameLocked(p.ID, p.Name); err != nil {
		return err
	}
	cpy := *p
	s.platforms[p.ID] = &cpy
	return nil
}

// Delete implements Store
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.platforms[id]; !ok {
		return errors.NotFoundf("No such platform to delete: %s", id)
	}
	delete(s.platforms, id)
	return nil
}

// Count implements Store
func (s *MemoryStore) Count() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.platforms)), nil
}

func (s *MemoryStore) checkNameLocked(id, name string) error {
	n := utils.NormalizeName(name)
	for _, p := range s.platforms {
		if p.ID != id && utils.NormalizeName(p.Name) == n {
			return errors.AlreadyExistsf("Platform %q", name)
		}
	}
	return nil
}
