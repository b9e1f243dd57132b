package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangik4/heartlink/handlers"
	"github.com/mwangik4/heartlink/middleware"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Post("/verify-email", middleware.Protected(), handlers.VerifyEmail)
	auth.Post("/forgot-password", handlers.ForgotPassword)
	auth.Post("/reset-password", handlers.ResetPassword)
}
