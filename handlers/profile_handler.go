package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/database"
	"github.com/mwangik4/heartlink/models"
	"github.com/mwangik4/heartlink/services"
	"gorm.io/datatypes"
)

type UpdateProfileRequest struct {
	Bio              *string   `json:"bio"`
	Gender           *string   `json:"gender"`
	InterestedIn     *string   `json:"interested_in"`
	BirthDate        *string   `json:"birth_date"` // YYYY-MM-DD
	City             *string   `json:"city"`
	RelationshipGoal *string   `json:"relationship_goal"`
	Interests        *[]string `json:"interests"`
}

func GetMyProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var profile models.Profile
	if err := database.DB.Preload("Photos").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	return c.JSON(profile)
}

func UpdateProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var profile models.Profile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Gender != nil {
		profile.Gender = req.Gender
	}
	if req.InterestedIn != nil {
		profile.InterestedIn = req.InterestedIn
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid birth_date, expected YYYY-MM-DD"})
		}
		profile.BirthDate = &birthDate
	}
	if req.City != nil {
		profile.City = req.City
	}
	if req.RelationshipGoal != nil {
		profile.RelationshipGoal = req.RelationshipGoal
	}
	if req.Interests != nil {
		payload, err := json.Marshal(*req.Interests)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid interests"})
		}
		profile.Interests = datatypes.JSON(payload)
	}

	if err := database.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	completeness, err := services.Gamification.RecalculateCompleteness(userID)
	if err != nil {
		log.Printf("🔥 Failed to recalculate completeness for %s: %v", userID, err)
	} else {
		profile.Completeness = completeness
	}

	if _, err := services.Gamification.CheckAndAwardBadges(userID); err != nil {
		log.Printf("🔥 Badge check after profile update failed for %s: %v", userID, err)
	}

	return c.JSON(profile)
}

type AddPhotoRequest struct {
	URL       string `json:"url" validate:"required,url"`
	IsPrimary bool   `json:"is_primary"`
}

func AddPhoto(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req AddPhotoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var profile models.Profile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	var photoCount int64
	database.DB.Model(&models.ProfilePhoto{}).Where("profile_id = ?", profile.ID).Count(&photoCount)

	photo := models.ProfilePhoto{
		ProfileID: profile.ID,
		URL:       req.URL,
		Position:  int(photoCount),
		IsPrimary: req.IsPrimary || photoCount == 0,
	}
	if err := database.DB.Create(&photo).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add photo"})
	}

	if _, err := services.Gamification.UpdateQuestProgress(userID, services.QuestUpdatePhoto, 1); err != nil {
		log.Printf("🔥 Photo quest update failed for %s: %v", userID, err)
	}
	if _, err := services.Gamification.RecalculateCompleteness(userID); err != nil {
		log.Printf("🔥 Failed to recalculate completeness for %s: %v", userID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(photo)
}

func DeletePhoto(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	photoID := c.Params("photoId")

	var profile models.Profile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	result := database.DB.Delete(&models.ProfilePhoto{}, "id = ? AND profile_id = ?", photoID, profile.ID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete photo"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Photo not found"})
	}

	if _, err := services.Gamification.RecalculateCompleteness(userID); err != nil {
		log.Printf("🔥 Failed to recalculate completeness for %s: %v", userID, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ViewProfile returns another member's public profile and appends a
// profile_viewed activity entry for the profile's owner (this feeds the
// "popular" badge's 7-day window).
func ViewProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	viewerID, _ := uuid.Parse(claims["user_id"].(string))

	targetID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var profile models.Profile
	if err := database.DB.Preload("Photos").Where("user_id = ?", targetID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	if viewerID != targetID {
		err := services.Gamification.RecordActivity(targetID, models.ActivityProfileViewed, map[string]interface{}{
			"viewer_id": viewerID.String(),
		})
		if err != nil {
			log.Printf("🔥 Failed to record profile view for %s: %v", targetID, err)
		}
	}

	return c.JSON(profile)
}
