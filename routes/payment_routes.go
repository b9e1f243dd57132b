package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangik4/heartlink/handlers"
	"github.com/mwangik4/heartlink/middleware"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/payments/webhook", handlers.HandlePaymentWebhook)

	subscriptions := api.Group("/subscriptions", middleware.Protected())
	subscriptions.Post("", handlers.InitiatePurchase)
	subscriptions.Get("/me", handlers.GetMySubscription)
}
