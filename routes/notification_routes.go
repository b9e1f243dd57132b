package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangik4/heartlink/handlers"
	"github.com/mwangik4/heartlink/middleware"
)

func NotificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	devices := api.Group("/devices", middleware.Protected())
	devices.Post("", handlers.RegisterDeviceToken)
	devices.Delete("", handlers.UnregisterDeviceToken)
}
