package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mwangik4/heartlink/database"
	"github.com/mwangik4/heartlink/models"
)

func GetAdminStats(c *fiber.Ctx) error {
	var users, matches, messages, openReports, activeSubs int64

	database.DB.Model(&models.User{}).Count(&users)
	database.DB.Model(&models.Match{}).Where("is_active = ?", true).Count(&matches)
	database.DB.Model(&models.Message{}).Count(&messages)
	database.DB.Model(&models.Report{}).Where("status = ?", "open").Count(&openReports)
	database.DB.Model(&models.Subscription{}).Where("status = ?", "active").Count(&activeSubs)

	return c.JSON(fiber.Map{
		"total_users":          users,
		"active_matches":       matches,
		"total_messages":       messages,
		"open_reports":         openReports,
		"active_subscriptions": activeSubs,
	})
}

type SetUserActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// SetUserActive suspends or reinstates an account (e.g. after a report is
// upheld).
func SetUserActive(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req SetUserActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	user.IsActive = req.IsActive
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
	}

	return c.JSON(user)
}
