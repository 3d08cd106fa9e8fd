package storage

import (
	"flixmap/internal/models"
	"flixmap/internal/structures"
	"flixmap/internal/testutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvideStores_UseConfiguredPaths(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{Persistence: structures.Persistence{
		MappingsPath: filepath.Join(dir, "mappings.json"),
		SkipsPath:    filepath.Join(dir, "skips.json"),
	}}
	metrics := testutil.NewMockMetrics()

	skips := ProvideSkipStore(conf, PlainCompression{}, metrics)
	_, err := skips.Append("1:1:1", func([]models.SkipSubmission) (models.SkipSubmission, error) {
		return models.SkipSubmission{ID: "x", Intro: models.Interval{End: 10}, Outro: models.Interval{End: 10}, CreatedAt: time.Now()}, nil
	})
	require.NoError(t, err)

	reloaded := ProvideSkipStore(conf, PlainCompression{}, metrics)
	dropped, err := reloaded.Restore()
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Equal(t, 1, reloaded.SubmissionCount())
	assert.Equal(t, 1, metrics.Count("persist:skips"))

	mappings := ProvideMappingStore(conf, PlainCompression{}, metrics)
	_, err = mappings.Restore()
	require.NoError(t, err)
	assert.Zero(t, mappings.Len())
}
