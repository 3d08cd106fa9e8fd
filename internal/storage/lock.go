package storage

import (
	"errors"
	"flixmap/internal/structures"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

var ErrLocked = errors.New("mapping store is locked by another process")

// StoreLock keeps a single writer process per mapping file.
type StoreLock struct {
	path string
	lock *flock.Flock
}

func NewStoreLock(conf *structures.Config) *StoreLock {
	path := conf.Persistence.MappingsPath + ".lock"
	return &StoreLock{path: path, lock: flock.New(path)}
}

func (l *StoreLock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	if !ok {
		return fmt.Errorf("%w (%s)", ErrLocked, l.path)
	}
	return nil
}

func (l *StoreLock) Release() error {
	return l.lock.Unlock()
}
