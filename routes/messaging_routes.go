package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/mwangik4/heartlink/handlers"
	"github.com/mwangik4/heartlink/middleware"
)

func MessagingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	conversations := api.Group("/conversations", middleware.Protected())
	conversations.Get("", handlers.GetUserConversations)
	conversations.Get("/:conversationId/messages", handlers.GetConversationMessages)
	conversations.Post("/:conversationId/messages", handlers.SendMessage)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
