package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/database"
	"github.com/mwangik4/heartlink/models"
	"github.com/mwangik4/heartlink/notifications"
	"github.com/mwangik4/heartlink/services"
	"gorm.io/gorm"
)

// Score adjustments applied to the swiped-on profile.
const (
	scoreLikeDelta = 8
	scorePassDelta = -3
)

// GetDiscoverFeed returns active profiles the caller has not yet swiped on,
// excluding blocked users in either direction.
func GetDiscoverFeed(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 50 {
		limit = 20
	}

	var profiles []models.Profile
	err := database.DB.
		Preload("Photos").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("profiles.user_id != ? AND users.is_active = ?", userID, true).
		Where("profiles.user_id NOT IN (?)",
			database.DB.Model(&models.Swipe{}).Select("target_id").Where("swiper_id = ?", userID)).
		Where("profiles.user_id NOT IN (?)",
			database.DB.Model(&models.Block{}).Select("blocked_id").Where("blocker_id = ?", userID)).
		Where("profiles.user_id NOT IN (?)",
			database.DB.Model(&models.Block{}).Select("blocker_id").Where("blocked_id = ?", userID)).
		Order("profiles.score desc").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load discover feed"})
	}

	return c.JSON(profiles)
}

type SwipeRequest struct {
	TargetID  string `json:"target_id" validate:"required,uuid"`
	Direction string `json:"direction" validate:"required,oneof=like pass"`
}

// SwipeProfile records a like or pass. A reciprocal like creates a match
// with its conversation and notifies both sides.
func SwipeProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	swiperID, _ := uuid.Parse(claims["user_id"].(string))

	var req SwipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	targetID, _ := uuid.Parse(req.TargetID)

	if targetID == swiperID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot swipe on yourself"})
	}

	var target models.User
	if err := database.DB.First(&target, "id = ?", targetID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	swipe := models.Swipe{SwiperID: swiperID, TargetID: targetID, Direction: req.Direction}
	if err := database.DB.Create(&swipe).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already swiped on this profile"})
	}

	delta := scorePassDelta
	if req.Direction == "like" {
		delta = scoreLikeDelta
	}
	database.DB.Model(&models.Profile{}).
		Where("user_id = ?", targetID).
		Update("score", gorm.Expr("score + ?", delta))

	if err := services.Gamification.RecordActivity(swiperID, models.ActivitySwipeMade, map[string]interface{}{
		"target_id": targetID.String(),
		"direction": req.Direction,
	}); err != nil {
		log.Printf("🔥 Failed to record swipe activity for %s: %v", swiperID, err)
	}

	if _, err := services.Gamification.UpdateQuestProgress(swiperID, services.QuestSwipeProfiles, 1); err != nil {
		log.Printf("🔥 Swipe quest update failed for %s: %v", swiperID, err)
	}

	if req.Direction != "like" {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"matched": false})
	}

	// Reciprocal like?
	var reciprocal models.Swipe
	err := database.DB.
		Where("swiper_id = ? AND target_id = ? AND direction = ?", targetID, swiperID, "like").
		First(&reciprocal).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{"matched": false})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check for match"})
	}

	match, err := createMatch(swiperID, targetID)
	if err != nil {
		log.Printf("🔥 Failed to create match between %s and %s: %v", swiperID, targetID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create match"})
	}

	for _, id := range []uuid.UUID{swiperID, targetID} {
		if err := services.Gamification.RecordActivity(id, models.ActivityMatchCreated, map[string]interface{}{
			"match_id": match.ID.String(),
		}); err != nil {
			log.Printf("🔥 Failed to record match activity for %s: %v", id, err)
		}
		if _, err := services.Gamification.CheckAndAwardBadges(id); err != nil {
			log.Printf("🔥 Badge check after match failed for %s: %v", id, err)
		}
	}

	go notifications.SendPush(targetID, "It's a match! 💘",
		"Someone you liked just liked you back. Say hello!",
		map[string]interface{}{"match_id": match.ID.String()})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"matched": true, "match": match})
}

// createMatch creates the match row and its conversation in one transaction.
func createMatch(userA, userB uuid.UUID) (*models.Match, error) {
	var match models.Match
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var a, b models.User
		if err := tx.First(&a, "id = ?", userA).Error; err != nil {
			return err
		}
		if err := tx.First(&b, "id = ?", userB).Error; err != nil {
			return err
		}

		conversation := models.Conversation{Participants: []*models.User{&a, &b}}
		if err := tx.Create(&conversation).Error; err != nil {
			return err
		}

		match = models.Match{
			UserAID:        userA,
			UserBID:        userB,
			ConversationID: &conversation.ID,
			IsActive:       true,
		}
		return tx.Create(&match).Error
	})
	if err != nil {
		return nil, err
	}
	return &match, nil
}
