package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangik4/heartlink/handlers"
	"github.com/mwangik4/heartlink/middleware"
)

func DiscoveryRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	discover := api.Group("/discover", middleware.Protected())
	discover.Get("", handlers.GetDiscoverFeed)

	swipes := api.Group("/swipes", middleware.Protected())
	swipes.Post("", handlers.SwipeProfile)

	matches := api.Group("/matches", middleware.Protected())
	matches.Get("", handlers.ListMyMatches)
	matches.Delete("/:matchId", handlers.Unmatch)
}
