package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/database"
	"github.com/mwangik4/heartlink/models"
)

func ListMyMatches(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var matches []models.Match
	err := database.DB.
		Where("(user_a_id = ? OR user_b_id = ?) AND is_active = ?", userID, userID, true).
		Order("created_at desc").
		Find(&matches).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load matches"})
	}

	return c.JSON(matches)
}

// Unmatch deactivates a match. Rows are kept for the matchmaker badge count
// and audit; the conversation simply stops being reachable.
func Unmatch(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	matchID := c.Params("matchId")

	var match models.Match
	if err := database.DB.First(&match, "id = ?", matchID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Match not found"})
	}

	if match.UserAID != userID && match.UserBID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: not your match"})
	}

	match.IsActive = false
	if err := database.DB.Save(&match).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to unmatch"})
	}

	return c.JSON(fiber.Map{"message": "Unmatched"})
}
