package storage

import (
	"flixmap/internal/models"
	"flixmap/internal/providers"
	"flixmap/internal/storage/interfaces"
	"flixmap/internal/structures"
)

func ProvideMappingStore(conf *structures.Config, compressor interfaces.CompressorInterface, metrics providers.MetricsProviderInterface) *models.MappingStore {
	return models.NewMappingStore(NewSnapshotFile("mappings", conf.Persistence.MappingsPath, compressor, metrics))
}

func ProvideSkipStore(conf *structures.Config, compressor interfaces.CompressorInterface, metrics providers.MetricsProviderInterface) *models.SkipStore {
	return models.NewSkipStore(NewSnapshotFile("skips", conf.Persistence.SkipsPath, compressor, metrics))
}
