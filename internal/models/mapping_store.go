package models

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var ErrMappingExists = errors.New("mapping already exists")

// Snapshotter persists a whole collection at once.
type Snapshotter interface {
	Save(v any) error
	// Load decodes the last snapshot into v and reports whether one existed.
	Load(v any) (bool, error)
}

type refKey struct {
	id  int
	typ ContentType
}

// MappingStore keeps every mapping resident and rewrites the snapshot on each append.
type MappingStore struct {
	mu     sync.RWMutex
	list   []Mapping
	byRef  map[refKey]int
	bySlug map[string]int
	file   Snapshotter
}

func NewMappingStore(file Snapshotter) *MappingStore {
	return &MappingStore{
		byRef:  make(map[refKey]int),
		bySlug: make(map[string]int),
		file:   file,
	}
}

// Restore replaces the resident set with the persisted snapshot. Later
// duplicates of an already indexed key are dropped; the count is returned.
func (s *MappingStore) Restore() (int, error) {
	var loaded []Mapping
	if _, err := s.file.Load(&loaded); err != nil {
		return 0, fmt.Errorf("load mappings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.list = make([]Mapping, 0, len(loaded))
	s.byRef = make(map[refKey]int, len(loaded))
	s.bySlug = make(map[string]int, len(loaded))
	dropped := 0
	for _, m := range loaded {
		key := refKey{m.TmdbID, m.Type}
		if _, ok := s.byRef[key]; ok {
			dropped++
			continue
		}
		if _, ok := s.bySlug[m.FlixSlug]; ok {
			dropped++
			continue
		}
		s.index(m)
	}
	return dropped, nil
}

func (s *MappingStore) index(m Mapping) {
	s.list = append(s.list, m)
	pos := len(s.list) - 1
	s.byRef[refKey{m.TmdbID, m.Type}] = pos
	s.bySlug[m.FlixSlug] = pos
}

func (s *MappingStore) Get(id int, t ContentType) (Mapping, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.byRef[refKey{id, t}]
	if !ok {
		return Mapping{}, false
	}
	return s.list[pos], true
}

func (s *MappingStore) GetBySlug(slug string) (Mapping, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.bySlug[slug]
	if !ok {
		return Mapping{}, false
	}
	return s.list[pos], true
}

func (s *MappingStore) Has(id int, t ContentType) bool {
	_, ok := s.Get(id, t)
	return ok
}

// Append stores m and persists the full set. When the reference key or the
// slug is already taken the stored mapping is returned with ErrMappingExists.
// A failed write leaves the resident set unchanged.
func (s *MappingStore) Append(m Mapping) (Mapping, error) {
	m.Genres = slices.Clone(m.Genres)

	s.mu.Lock()
	defer s.mu.Unlock()

	if pos, ok := s.byRef[refKey{m.TmdbID, m.Type}]; ok {
		return s.list[pos], ErrMappingExists
	}
	if pos, ok := s.bySlug[m.FlixSlug]; ok {
		return s.list[pos], ErrMappingExists
	}

	s.index(m)
	if err := s.file.Save(s.list); err != nil {
		s.list = s.list[:len(s.list)-1]
		delete(s.byRef, refKey{m.TmdbID, m.Type})
		delete(s.bySlug, m.FlixSlug)
		return Mapping{}, fmt.Errorf("persist mappings: %w", err)
	}
	return m, nil
}

// Flush rewrites the snapshot from the resident set.
func (s *MappingStore) Flush() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.file.Save(s.list)
}

// IDs returns the mapped reference ids of type t in insertion order; an
// empty t selects every type.
func (s *MappingStore) IDs(t ContentType) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, 0, len(s.list))
	for _, m := range s.list {
		if t == "" || m.Type == t {
			ids = append(ids, m.TmdbID)
		}
	}
	return ids
}

func (s *MappingStore) MaxID(t ContentType) (int, bool) {
	ids := s.IDs(t)
	if len(ids) == 0 {
		return 0, false
	}
	return slices.Max(ids), true
}

func (s *MappingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

func (s *MappingStore) CountByType() map[ContentType]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[ContentType]int, 2)
	for _, m := range s.list {
		counts[m.Type]++
	}
	return counts
}
