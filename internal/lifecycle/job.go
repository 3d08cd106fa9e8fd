package lifecycle

import (
	"flixmap/internal/models"
	"flixmap/internal/providers"
	"flixmap/internal/structures"
)

// Job bundles what the one-shot CLI commands need.
type Job struct {
	Config   *structures.Config
	Logger   providers.Logger
	Manager  *Manager
	Mappings *models.MappingStore
	Skips    *models.SkipStore
}

func NewJob(config *structures.Config, logger providers.Logger, manager *Manager, mappings *models.MappingStore, skips *models.SkipStore) *Job {
	return &Job{
		Config:   config,
		Logger:   logger,
		Manager:  manager,
		Mappings: mappings,
		Skips:    skips,
	}
}
