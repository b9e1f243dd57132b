package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/database"
	"github.com/mwangik4/heartlink/models"
	"github.com/mwangik4/heartlink/notifications"
	"github.com/mwangik4/heartlink/payments"
	"github.com/mwangik4/heartlink/services"
	"gorm.io/gorm"
)

// Plan prices in USD; converted to KES at purchase time.
var planPricesUSD = map[string]float64{
	"premium": 9.99,
	"plus":    4.99,
}

const subscriptionDays = 30

type PurchaseRequest struct {
	Plan        string `json:"plan" validate:"required,oneof=premium plus"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// InitiatePurchase creates a pending subscription + payment pair and fires
// the M-Pesa STK push. The webhook finishes the job.
func InitiatePurchase(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.Subscription
	err := database.DB.
		Where("user_id = ? AND status = ? AND expires_at > ?", userID, "active", time.Now()).
		First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You already have an active subscription"})
	}

	amountKES, err := services.ConvertUSDToKES(planPricesUSD[req.Plan])
	if err != nil {
		log.Printf("🔥 Currency conversion failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to price subscription"})
	}

	var payment models.Payment
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		subscription := models.Subscription{
			UserID: userID,
			Plan:   req.Plan,
			Status: "pending",
		}
		if err := tx.Create(&subscription).Error; err != nil {
			return err
		}

		payment = models.Payment{
			SubscriptionID: &subscription.ID,
			Amount:         amountKES,
			Currency:       "KES",
			Provider:       "mpesa",
			Status:         "pending",
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payment record"})
	}

	stkResp, err := payments.InitiateMpesaSTKPush(amountKES, req.PhoneNumber, payment.ID.String())
	if err != nil {
		log.Printf("🔥 STK push failed for payment %s: %v", payment.ID, err)
		database.DB.Model(&payment).Update("status", "failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to initiate M-Pesa payment"})
	}

	merchantRequestID := stkResp.Response.MerchantRequestID
	payment.MerchantRequestID = &merchantRequestID
	database.DB.Save(&payment)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"payment_id":       payment.ID,
		"customer_message": stkResp.Response.CustomerMessage,
	})
}

type KcbWebhookPayload struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string      `json:"Name"`
					Value interface{} `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
			Reference string `json:"Reference"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

func HandlePaymentWebhook(c *fiber.Ctx) error {
	var payload KcbWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse webhook payload"})
	}

	stk := payload.Body.StkCallback

	// The one shape we accept: a callback carrying our invoice reference.
	// Anything else is rejected outright rather than guessed at.
	if stk.MerchantRequestID == "" || stk.Reference == "" {
		log.Printf("🔥 Webhook with unrecognized shape rejected: %+v", payload)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unrecognized webhook payload shape"})
	}

	var paymentRefID string
	parts := strings.Split(stk.Reference, "-")
	if len(parts) == 2 {
		paymentRefID = parts[1]
	} else {
		paymentRefID = stk.Reference
	}

	log.Printf("Received webhook for MerchantRequestID: %s, PaymentRefID: %s, ResultCode: %d",
		stk.MerchantRequestID, paymentRefID, stk.ResultCode)

	var payment models.Payment
	if err := database.DB.Where("id = ?", paymentRefID).First(&payment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment record not found"})
	}

	if payment.Status == "succeeded" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Webhook already processed"})
	}

	if stk.ResultCode != 0 {
		payment.Status = "failed"
		database.DB.Save(&payment)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Acknowledged failed payment"})
	}

	var subscriberID uuid.UUID
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var mpesaReceipt string
		for _, item := range stk.CallbackMetadata.Item {
			if item.Name == "MpesaReceiptNumber" {
				if val, ok := item.Value.(string); ok {
					mpesaReceipt = val
					break
				}
			}
		}

		payment.Status = "succeeded"
		payment.ProviderTxnID = &mpesaReceipt
		payment.MerchantRequestID = &stk.MerchantRequestID
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if payment.SubscriptionID == nil {
			return nil
		}

		var subscription models.Subscription
		if err := tx.Preload("User").First(&subscription, "id = ?", payment.SubscriptionID).Error; err != nil {
			return err
		}

		now := time.Now()
		expiry := now.AddDate(0, 0, subscriptionDays)
		subscription.Status = "active"
		subscription.StartsAt = &now
		subscription.ExpiresAt = &expiry
		if err := tx.Save(&subscription).Error; err != nil {
			return err
		}

		subscriberID = subscription.UserID
		go notifications.SendEmail(subscription.User.FullName, subscription.User.Email,
			"Your Heartlink subscription is active!",
			"<h1>Welcome to premium</h1><p>Your payment was received and your subscription is now active. Enjoy!</p>")

		return nil
	})

	if err != nil {
		log.Printf("🔥 CRITICAL: Error processing successful webhook for PaymentRefID %s: %v", paymentRefID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process webhook"})
	}

	if subscriberID != uuid.Nil {
		if _, err := services.Gamification.CheckAndAwardBadges(subscriberID); err != nil {
			log.Printf("🔥 Badge check after subscription activation failed for %s: %v", subscriberID, err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Webhook processed successfully"})
}

func GetMySubscription(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var subscription models.Subscription
	err := database.DB.
		Where("user_id = ? AND status = ?", userID, "active").
		Order("expires_at desc").
		First(&subscription).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(fiber.Map{"subscription": nil})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load subscription"})
	}

	return c.JSON(fiber.Map{"subscription": subscription})
}
