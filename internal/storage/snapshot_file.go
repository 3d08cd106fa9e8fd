package storage

import (
	"flixmap/internal/providers"
	"flixmap/internal/storage/interfaces"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

// SnapshotFile writes a whole collection to one file and reads it back.
// Writes land in <path>.tmp, are synced and then renamed over path.
type SnapshotFile struct {
	name       string
	path       string
	compressor interfaces.CompressorInterface
	metrics    providers.MetricsProviderInterface
}

func NewSnapshotFile(name, path string, compressor interfaces.CompressorInterface, metrics providers.MetricsProviderInterface) *SnapshotFile {
	return &SnapshotFile{
		name:       name,
		path:       path,
		compressor: compressor,
		metrics:    metrics,
	}
}

func (f *SnapshotFile) Save(v any) error {
	start := time.Now()
	defer func() {
		f.metrics.ObservePersistenceDuration(f.name, time.Since(start))
	}()

	jsonData, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}

// Load decodes the snapshot into v. A missing file is not an error and
// leaves v untouched.
func (f *SnapshotFile) Load(v any) (bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if len(data) == 0 {
		return false, nil
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return false, fmt.Errorf("%s: %w", f.path, err)
	}
	if err := json.Unmarshal(decompressed, v); err != nil {
		return false, fmt.Errorf("%s: %w", f.path, err)
	}
	return true, nil
}
