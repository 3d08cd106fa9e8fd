package internal

import (
	"flixmap/internal/controllers"
	"flixmap/internal/providers"
	"net/http"
)

func InitRoutes(mappingController *controllers.MappingController, skipController *controllers.SkipController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/map/tmdb/{id}", http.HandlerFunc(mappingController.Forward))
	routers.Get("/map/flix/{slug...}", http.HandlerFunc(mappingController.Reverse))
	routers.Get("/getlatest", http.HandlerFunc(mappingController.Latest))

	routers.Get("/skip/{id}/{season}/{episode}", http.HandlerFunc(skipController.Best))
	routers.Post("/skip/{id}/{season}/{episode}", http.HandlerFunc(skipController.Submit))
	routers.Delete("/skip/{id}/{season}/{episode}", http.HandlerFunc(skipController.PurgeEpisode))
	routers.Post("/skip/vote", http.HandlerFunc(skipController.Vote))
	routers.Post("/skip/verify", http.HandlerFunc(skipController.Verify))
	routers.Delete("/skip", http.HandlerFunc(skipController.PurgeAll))
	return routers
}
