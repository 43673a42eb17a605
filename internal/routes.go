package internal

import (
	"net/http"

	"contestd/internal/controllers"
	"contestd/internal/providers"
	"contestd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/contests", http.HandlerFunc(apiController.GetContests))
	routers.Get("/archive", http.HandlerFunc(apiController.GetArchive))
	routers.Get("/subscriptions", http.HandlerFunc(apiController.GetSubscription))
	routers.Post("/subscriptions/enable", http.HandlerFunc(apiController.EnableReminders))
	routers.Post("/subscriptions/disable", http.HandlerFunc(apiController.DisableReminders))
	return routers
}
