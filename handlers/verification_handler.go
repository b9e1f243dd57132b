package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/database"
	"github.com/mwangik4/heartlink/models"
	"github.com/mwangik4/heartlink/notifications"
	"github.com/mwangik4/heartlink/services"
)

type SubmitVerificationRequest struct {
	SelfieURL string `json:"selfie_url" validate:"required,url"`
}

func SubmitVerification(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req SubmitVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var pending int64
	database.DB.Model(&models.VerificationRequest{}).
		Where("user_id = ? AND status = ?", userID, "pending").
		Count(&pending)
	if pending > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A verification request is already pending"})
	}

	request := models.VerificationRequest{
		UserID:    userID,
		SelfieURL: req.SelfieURL,
		Status:    "pending",
	}
	if err := database.DB.Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit verification"})
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

func GetMyVerification(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var requests []models.VerificationRequest
	database.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&requests)

	return c.JSON(requests)
}

func ListPendingVerifications(c *fiber.Ctx) error {
	var requests []models.VerificationRequest
	if err := database.DB.Where("status = ?", "pending").Order("created_at asc").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load verification queue"})
	}
	return c.JSON(requests)
}

type ReviewVerificationRequest struct {
	Approve bool    `json:"approve"`
	Notes   *string `json:"notes"`
}

func ReviewVerification(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	reviewerID, _ := uuid.Parse(claims["user_id"].(string))

	requestID := c.Params("requestId")

	var request models.VerificationRequest
	if err := database.DB.First(&request, "id = ?", requestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Verification request not found"})
	}
	if request.Status != "pending" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Verification request already reviewed"})
	}

	var req ReviewVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	now := time.Now()
	if req.Approve {
		request.Status = "approved"
	} else {
		request.Status = "rejected"
	}
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &now
	request.Notes = req.Notes

	if err := database.DB.Save(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save review"})
	}

	if req.Approve {
		if _, err := services.Gamification.CheckAndAwardBadges(request.UserID); err != nil {
			log.Printf("🔥 Badge check after verification approval failed for %s: %v", request.UserID, err)
		}
		go notifications.SendPush(request.UserID, "You're verified! ✔️",
			"Your selfie verification was approved.", nil)
	}

	return c.JSON(request)
}
