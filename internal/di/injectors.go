//go:build wireinject
// +build wireinject

package di

import (
	"flixmap/internal"
	"flixmap/internal/catalog/provider"
	"flixmap/internal/catalog/tmdb"
	"flixmap/internal/controllers"
	"flixmap/internal/crawler"
	"flixmap/internal/lifecycle"
	"flixmap/internal/lifecycle/interfaces"
	"flixmap/internal/providers"
	"flixmap/internal/services"
	"flixmap/internal/storage"
	"flixmap/internal/structures"

	wire "github.com/google/wire"
)

var coreSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	providers.NewInstrumentedCacheProvider,

	storage.NewCompressor,
	storage.ProvideMappingStore,
	storage.ProvideSkipStore,
	storage.NewStoreLock,

	tmdb.ProvideCatalog,
	provider.ProvideCatalog,

	services.NewMappingService,
	wire.Bind(new(services.MappingServiceInterface), new(*services.MappingService)),
	crawler.NewCrawler,
	lifecycle.NewManager,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		coreSet,
		wire.Bind(new(interfaces.ManagerInterface), new(*lifecycle.Manager)),
		services.NewSkipService,
		wire.Bind(new(services.SkipServiceInterface), new(*services.SkipService)),
		controllers.NewMappingController,
		controllers.NewSkipController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitJob(cfg *structures.CliFlags) (*lifecycle.Job, error) {

	wire.Build(
		coreSet,
		lifecycle.NewJob,
	)

	return nil, nil
}

func InitInspector(cfg *structures.CliFlags) (*lifecycle.Inspector, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		storage.NewCompressor,
		storage.ProvideMappingStore,
		storage.ProvideSkipStore,
		lifecycle.NewInspector,
	)

	return nil, nil
}
