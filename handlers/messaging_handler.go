package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	config "github.com/mwangik4/heartlink/configs"
	"github.com/mwangik4/heartlink/database"
	"github.com/mwangik4/heartlink/models"
	"github.com/mwangik4/heartlink/notifications"
	"github.com/mwangik4/heartlink/services"
	"github.com/mwangik4/heartlink/websocket"
	"gorm.io/gorm"
)

func GetUserConversations(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	offset := (page - 1) * pageSize

	var user models.User
	if err := database.DB.
		Preload("Conversations.Participants").
		Where("id = ?", userID).
		Limit(pageSize).
		Offset(offset).
		First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user.Conversations)
}

func GetConversationMessages(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	conversationID, err := uuid.Parse(c.Params("conversationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid conversation ID"})
	}

	if !isParticipant(conversationID, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: not your conversation"})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	offset := (page - 1) * pageSize

	var messages []models.Message
	if err := database.DB.
		Where("conversation_id = ?", conversationID).
		Order("created_at asc").
		Limit(pageSize).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}

	return c.JSON(messages)
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

func SendMessage(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	senderID, _ := uuid.Parse(claims["user_id"].(string))

	conversationID, err := uuid.Parse(c.Params("conversationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid conversation ID"})
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if !isParticipant(conversationID, senderID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: not your conversation"})
	}

	otherID, err := otherParticipant(conversationID, senderID)
	if err == nil && isBlockedEitherWay(senderID, otherID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Messaging unavailable for this conversation"})
	}

	message := models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        req.Content,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send message"})
	}

	recordMessageSent(&message)
	websocket.Broadcast <- &message

	return c.Status(fiber.StatusCreated).JSON(message)
}

// recordMessageSent drives the gamification hooks for a freshly persisted
// message: the sender's send_messages quest, the previous sender's
// get_replies quest when this message is a reply, and the recipient's push.
// Shared by the REST endpoint and the websocket loop.
func recordMessageSent(message *models.Message) {
	senderID := message.SenderID

	if err := services.Gamification.RecordActivity(senderID, models.ActivityMessageSent, map[string]interface{}{
		"conversation_id": message.ConversationID.String(),
	}); err != nil {
		log.Printf("🔥 Failed to record message activity for %s: %v", senderID, err)
	}

	if _, err := services.Gamification.UpdateQuestProgress(senderID, services.QuestSendMessages, 1); err != nil {
		log.Printf("🔥 Message quest update failed for %s: %v", senderID, err)
	}

	// A reply is a message whose immediately preceding message in the
	// conversation came from the other side; that earlier sender just "got
	// a reply".
	var previous models.Message
	err := database.DB.
		Where("conversation_id = ? AND id != ?", message.ConversationID, message.ID).
		Order("created_at desc").
		First(&previous).Error
	if err == nil && previous.SenderID != senderID {
		if _, err := services.Gamification.UpdateQuestProgress(previous.SenderID, services.QuestGetReplies, 1); err != nil {
			log.Printf("🔥 Reply quest update failed for %s: %v", previous.SenderID, err)
		}
	}

	if otherID, err := otherParticipant(message.ConversationID, senderID); err == nil {
		go notifications.SendPush(otherID, "New message 💬", "You have a new message waiting.",
			map[string]interface{}{"conversation_id": message.ConversationID.String()})
	}
}

func isParticipant(conversationID, userID uuid.UUID) bool {
	var count int64
	database.DB.Table("conversation_participants").
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count)
	return count > 0
}

func otherParticipant(conversationID, userID uuid.UUID) (uuid.UUID, error) {
	var participantIDs []uuid.UUID
	err := database.DB.Table("conversation_participants").
		Where("conversation_id = ?", conversationID).
		Pluck("user_id", &participantIDs).Error
	if err != nil {
		return uuid.Nil, err
	}
	for _, id := range participantIDs {
		if id != userID {
			return id, nil
		}
	}
	return uuid.Nil, gorm.ErrRecordNotFound
}

func isBlockedEitherWay(a, b uuid.UUID) bool {
	var count int64
	database.DB.Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count)
	return count > 0
}

func ServeWs(c *websocketcontrib.Conn) {
	var userID uuid.UUID

	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	userID, err = uuid.Parse(claims["user_id"].(string))
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid user ID"})
		c.Close()
		return
	}

	client := &websocket.Client{UserID: userID, Conn: c}
	websocket.Register <- client
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	for {
		var msg websocket.MessagePayload
		if err := c.ReadJSON(&msg); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for client %s: %v", userID, err)
			} else {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			break
		}

		convID, err := uuid.Parse(msg.ConversationID)
		if err != nil {
			_ = c.WriteJSON(fiber.Map{"error": "Invalid conversation ID"})
			continue
		}
		if !isParticipant(convID, userID) {
			_ = c.WriteJSON(fiber.Map{"error": "Not a participant of this conversation"})
			continue
		}

		dbMessage := models.Message{
			ConversationID: convID,
			SenderID:       userID,
			Content:        msg.Content,
		}
		if err := database.DB.Create(&dbMessage).Error; err != nil {
			log.Printf("Failed to save message for client %s: %v", userID, err)
			_ = c.WriteJSON(fiber.Map{"error": "Failed to save message"})
			continue
		}

		recordMessageSent(&dbMessage)
		websocket.Broadcast <- &dbMessage
	}
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
