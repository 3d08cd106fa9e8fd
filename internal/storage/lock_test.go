package storage

import (
	"flixmap/internal/structures"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLock_SecondAcquireFails(t *testing.T) {
	conf := &structures.Config{Persistence: structures.Persistence{
		MappingsPath: filepath.Join(t.TempDir(), "mappings.json"),
	}}

	first := NewStoreLock(conf)
	require.NoError(t, first.Acquire())

	second := NewStoreLock(conf)
	err := second.Acquire()
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, first.Release())
	require.NoError(t, second.Acquire())
	require.NoError(t, second.Release())
}
