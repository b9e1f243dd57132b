package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangik4/heartlink/handlers"
	"github.com/mwangik4/heartlink/middleware"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profiles := api.Group("/profiles", middleware.Protected())
	profiles.Get("/me", handlers.GetMyProfile)
	profiles.Put("/me", handlers.UpdateProfile)
	profiles.Post("/me/photos", handlers.AddPhoto)
	profiles.Delete("/me/photos/:photoId", handlers.DeletePhoto)
	profiles.Get("/:userId", handlers.ViewProfile)
}
