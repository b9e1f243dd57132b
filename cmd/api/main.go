package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/mwangik4/heartlink/database"
	"github.com/mwangik4/heartlink/jobs"
	"github.com/mwangik4/heartlink/notifications"
	"github.com/mwangik4/heartlink/payments"
	"github.com/mwangik4/heartlink/routes"
	"github.com/mwangik4/heartlink/services"
	"github.com/mwangik4/heartlink/websocket"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	services.InitGamification(database.DB)
	if err := services.Gamification.SeedBadgeDefinitions(); err != nil {
		log.Printf("🔥 Failed to seed badge definitions: %v", err)
	}

	go services.FetchRates()
	go payments.GetKcbAccessToken()

	c := cron.New()
	c.AddFunc("@hourly", jobs.ExpireOverdueSubscriptions)
	c.AddFunc("0 20 * * *", jobs.SendQuestReminders)
	go c.Start()
	log.Println("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "HeartLink",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		PassLocalsToViews: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Africa/Nairobi",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to HeartLink API",
		})
	})

	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.DiscoveryRoutes(app)
	routes.MessagingRoutes(app)
	routes.PaymentRoutes(app)
	routes.GamificationRoutes(app)
	routes.VerificationRoutes(app)
	routes.SafetyRoutes(app)
	routes.NotificationRoutes(app)
	routes.UploadRoutes(app)
	routes.AdminRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
