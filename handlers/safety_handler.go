package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/database"
	"github.com/mwangik4/heartlink/models"
)

type ReportRequest struct {
	ReportedID string  `json:"reported_id" validate:"required,uuid"`
	Reason     string  `json:"reason" validate:"required,oneof=spam harassment fake_profile inappropriate_content underage other"`
	Details    *string `json:"details"`
}

func ReportUser(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	reporterID, _ := uuid.Parse(claims["user_id"].(string))

	var req ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	reportedID, _ := uuid.Parse(req.ReportedID)

	if reportedID == reporterID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot report yourself"})
	}

	var reported models.User
	if err := database.DB.First(&reported, "id = ?", reportedID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	report := models.Report{
		ReporterID: reporterID,
		ReportedID: reportedID,
		Reason:     req.Reason,
		Details:    req.Details,
		Status:     "open",
	}
	if err := database.DB.Create(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit report"})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

type BlockRequest struct {
	BlockedID string `json:"blocked_id" validate:"required,uuid"`
}

func BlockUser(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	blockerID, _ := uuid.Parse(claims["user_id"].(string))

	var req BlockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	blockedID, _ := uuid.Parse(req.BlockedID)

	if blockedID == blockerID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot block yourself"})
	}

	block := models.Block{BlockerID: blockerID, BlockedID: blockedID}
	if err := database.DB.Create(&block).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "User already blocked"})
	}

	// A block also deactivates any match between the two.
	database.DB.Model(&models.Match{}).
		Where("(user_a_id = ? AND user_b_id = ?) OR (user_a_id = ? AND user_b_id = ?)",
			blockerID, blockedID, blockedID, blockerID).
		Update("is_active", false)

	return c.Status(fiber.StatusCreated).JSON(block)
}

func UnblockUser(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	blockerID, _ := uuid.Parse(claims["user_id"].(string))

	blockedID := c.Params("userId")

	result := database.DB.Delete(&models.Block{}, "blocker_id = ? AND blocked_id = ?", blockerID, blockedID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to unblock user"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Block not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func ListMyBlocks(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	blockerID, _ := uuid.Parse(claims["user_id"].(string))

	var blocks []models.Block
	database.DB.Where("blocker_id = ?", blockerID).Find(&blocks)

	return c.JSON(blocks)
}

func ListReports(c *fiber.Ctx) error {
	status := c.Query("status", "open")

	var reports []models.Report
	if err := database.DB.Where("status = ?", status).Order("created_at asc").Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load reports"})
	}
	return c.JSON(reports)
}

type ResolveReportRequest struct {
	Action string `json:"action" validate:"required,oneof=resolved dismissed"`
}

func ResolveReport(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	adminID, _ := uuid.Parse(claims["user_id"].(string))

	reportID := c.Params("reportId")

	var report models.Report
	if err := database.DB.First(&report, "id = ?", reportID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	}

	var req ResolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	now := time.Now()
	report.Status = req.Action
	report.ResolvedBy = &adminID
	report.ResolvedAt = &now
	if err := database.DB.Save(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve report"})
	}

	return c.JSON(report)
}
