package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/database"
	"github.com/mwangik4/heartlink/models"
	"github.com/mwangik4/heartlink/services"
)

// GetMyProgress returns the caller's XP, level, thresholds and badges.
func GetMyProgress(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	progress, err := services.Gamification.GetProgress(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load progress"})
	}

	return c.JSON(fiber.Map{
		"level":           progress.Level,
		"xp":              progress.XP,
		"badges":          progress.Badges,
		"level_threshold": services.XPThreshold(progress.Level),
		"next_level_at":   services.XPThreshold(progress.Level + 1),
	})
}

// GetDailyQuests returns today's quest set, issuing a fresh batch when the
// previous one has expired.
func GetDailyQuests(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	quests, err := services.Gamification.GenerateDailyQuests(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load daily quests"})
	}

	return c.JSON(quests)
}

// CompleteQuest is the manual override: mark a quest done and award its XP
// regardless of progress. Only the quest's owner may use it.
func CompleteQuest(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	questID, err := uuid.Parse(c.Params("questId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid quest ID"})
	}

	var quest models.Quest
	if err := database.DB.First(&quest, "id = ?", questID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quest not found"})
	}
	if quest.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: not your quest"})
	}

	result, err := services.Gamification.CompleteQuest(questID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete quest"})
	}
	if result == nil {
		return c.JSON(fiber.Map{"message": "Quest already completed"})
	}

	return c.JSON(result)
}

// CheckMyBadges re-runs the badge rules for the caller and reports anything
// newly earned.
func CheckMyBadges(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	newBadges, err := services.Gamification.CheckAndAwardBadges(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to evaluate badges"})
	}

	return c.JSON(fiber.Map{"new_badges": newBadges})
}

func ListBadgeCatalog(c *fiber.Ctx) error {
	var definitions []models.BadgeDefinition
	if err := database.DB.Where("is_active = ?", true).Find(&definitions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load badge catalog"})
	}
	return c.JSON(definitions)
}

type LeaderboardEntry struct {
	FullName string `json:"full_name"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
}

func GetLeaderboard(c *fiber.Ctx) error {
	var leaderboard []LeaderboardEntry

	err := database.DB.Model(&models.UserProgress{}).
		Select("users.full_name", "user_progresses.level", "user_progresses.xp").
		Joins("JOIN users ON users.id = user_progresses.user_id").
		Where("users.is_active = ?", true).
		Order("user_progresses.xp desc").
		Limit(10).
		Find(&leaderboard).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve leaderboard"})
	}

	return c.JSON(leaderboard)
}

// GenerateMyShareCard renders and uploads the caller's shareable card.
func GenerateMyShareCard(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	url, err := services.Gamification.GenerateShareCard(userID)
	if err != nil {
		log.Printf("🔥 Share card generation failed for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate share card"})
	}

	return c.JSON(fiber.Map{"url": url})
}
