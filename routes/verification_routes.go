package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangik4/heartlink/handlers"
	"github.com/mwangik4/heartlink/middleware"
)

func VerificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	verification := api.Group("/verification", middleware.Protected())
	verification.Post("", handlers.SubmitVerification)
	verification.Get("/me", handlers.GetMyVerification)

	adminVerification := api.Group("/admin/verification", middleware.Protected(), middleware.AdminRequired())
	adminVerification.Get("/pending", handlers.ListPendingVerifications)
	adminVerification.Put("/:requestId", handlers.ReviewVerification)
}
