package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangik4/heartlink/handlers"
	"github.com/mwangik4/heartlink/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/stats", handlers.GetAdminStats)
	admin.Put("/users/:userId/status", handlers.SetUserActive)
}
