package lifecycle

import (
	"flixmap/internal/models"
	"flixmap/internal/providers"
)

// Inspector loads both stores for reporting. It takes no lock and never
// writes, so it can run next to a live server and needs no catalog clients.
type Inspector struct {
	Logger   providers.Logger
	Mappings *models.MappingStore
	Skips    *models.SkipStore
	metrics  providers.MetricsProviderInterface
}

func NewInspector(logger providers.Logger, metrics providers.MetricsProviderInterface, mappings *models.MappingStore, skips *models.SkipStore) *Inspector {
	return &Inspector{
		Logger:   logger,
		Mappings: mappings,
		Skips:    skips,
		metrics:  metrics,
	}
}

func (i *Inspector) Load() error {
	return restoreStores(i.Logger, i.metrics, i.Mappings, i.Skips)
}
