package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangik4/heartlink/handlers"
	"github.com/mwangik4/heartlink/middleware"
)

func GamificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	gamification := api.Group("/gamification")
	gamification.Get("/leaderboard", handlers.GetLeaderboard)
	gamification.Get("/badges/catalog", handlers.ListBadgeCatalog)

	me := api.Group("/gamification", middleware.Protected())
	me.Get("/progress/me", handlers.GetMyProgress)
	me.Get("/quests/daily", handlers.GetDailyQuests)
	me.Post("/quests/:questId/complete", handlers.CompleteQuest)
	me.Post("/badges/check", handlers.CheckMyBadges)
	me.Post("/share-card", handlers.GenerateMyShareCard)
}
