package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangik4/heartlink/handlers"
	"github.com/mwangik4/heartlink/middleware"
)

func SafetyRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	reports := api.Group("/reports", middleware.Protected())
	reports.Post("", handlers.ReportUser)

	blocks := api.Group("/blocks", middleware.Protected())
	blocks.Get("", handlers.ListMyBlocks)
	blocks.Post("", handlers.BlockUser)
	blocks.Delete("/:userId", handlers.UnblockUser)

	adminReports := api.Group("/admin/reports", middleware.Protected(), middleware.AdminRequired())
	adminReports.Get("", handlers.ListReports)
	adminReports.Put("/:reportId/resolve", handlers.ResolveReport)
}
