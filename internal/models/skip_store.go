package models

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// SkipStore holds submissions per episode key in insertion order and rewrites
// the snapshot after every mutation. Mutations are applied under one write lock.
type SkipStore struct {
	mu   sync.RWMutex
	data map[string][]SkipSubmission
	file Snapshotter
}

func NewSkipStore(file Snapshotter) *SkipStore {
	return &SkipStore{
		data: make(map[string][]SkipSubmission),
		file: file,
	}
}

// Restore replaces the resident submissions with the persisted snapshot and
// reports how many episode keys were dropped because they do not parse.
func (s *SkipStore) Restore() (int, error) {
	loaded := make(map[string][]SkipSubmission)
	if _, err := s.file.Load(&loaded); err != nil {
		return 0, fmt.Errorf("load skip segments: %w", err)
	}
	data := make(map[string][]SkipSubmission, len(loaded))
	dropped := 0
	for key, list := range loaded {
		if _, err := ParseEpisodeKey(key); err != nil {
			dropped++
			continue
		}
		data[key] = list
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return dropped, nil
}

// List returns a copy of the submissions stored for key.
func (s *SkipStore) List(key string) []SkipSubmission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data[key])
}

// Append runs build against the current submissions of key and stores its
// result. build runs under the write lock, so what it reads cannot change
// before the new submission lands.
func (s *SkipStore) Append(key string, build func(existing []SkipSubmission) (SkipSubmission, error)) (SkipSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.data[key]
	sub, err := build(slices.Clone(previous))
	if err != nil {
		return SkipSubmission{}, err
	}

	next := make([]SkipSubmission, len(previous), len(previous)+1)
	copy(next, previous)
	s.data[key] = append(next, sub)
	if err := s.persist(); err != nil {
		s.restoreKey(key, previous, existed)
		return SkipSubmission{}, err
	}
	return sub, nil
}

// Update applies fn to the submission with the given id, wherever it lives.
func (s *SkipStore) Update(id string, fn func(*SkipSubmission)) (SkipSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, subs := range s.data {
		for i := range subs {
			if subs[i].ID != id {
				continue
			}
			next := slices.Clone(subs)
			fn(&next[i])
			s.data[key] = next
			if err := s.persist(); err != nil {
				s.data[key] = subs
				return SkipSubmission{}, err
			}
			return next[i], nil
		}
	}
	return SkipSubmission{}, ErrSubmissionNotFound
}

// DeleteEpisode removes every submission for key and reports how many went.
func (s *SkipStore) DeleteEpisode(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.data[key]
	if !existed {
		return 0, nil
	}
	delete(s.data, key)
	if err := s.persist(); err != nil {
		s.data[key] = previous
		return 0, err
	}
	return len(previous), nil
}

// Clear wipes the store and reports how many submissions were removed.
func (s *SkipStore) Clear() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.data
	removed := 0
	for _, subs := range previous {
		removed += len(subs)
	}
	s.data = make(map[string][]SkipSubmission)
	if err := s.persist(); err != nil {
		s.data = previous
		return 0, err
	}
	return removed, nil
}

func (s *SkipStore) Flush() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persist()
}

func (s *SkipStore) EpisodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *SkipStore) SubmissionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, subs := range s.data {
		n += len(subs)
	}
	return n
}

func (s *SkipStore) persist() error {
	if err := s.file.Save(s.data); err != nil {
		return fmt.Errorf("persist skip segments: %w", err)
	}
	return nil
}

func (s *SkipStore) restoreKey(key string, previous []SkipSubmission, existed bool) {
	if existed {
		s.data[key] = previous
		return
	}
	delete(s.data, key)
}
