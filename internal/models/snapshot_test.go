package models

import (
	"errors"
	"sync"

	json "github.com/goccy/go-json"
)

// memSnapshot round-trips through JSON so tests see what a reload would see.
type memSnapshot struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	failErr error
}

func (m *memSnapshot) Save(v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data = b
	m.saves++
	return nil
}

func (m *memSnapshot) Load(v any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return false, nil
	}
	return true, json.Unmarshal(m.data, v)
}

var errDiskFull = errors.New("disk full")
