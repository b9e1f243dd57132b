package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/database"
	"github.com/mwangik4/heartlink/models"
)

const expoPushURL = "https://exp.host/--/api/v2/push/send"

type expoPushMessage struct {
	To    []string               `json:"to"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data,omitempty"`
	Sound string                 `json:"sound"`
}

type expoPushResponse struct {
	Data []struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"data"`
}

// SendPush delivers a push notification to every device the user has
// registered. Failures are logged and swallowed: a missed push must never
// fail the action that produced it.
func SendPush(userID uuid.UUID, title, body string, data map[string]interface{}) {
	var tokens []string
	err := database.DB.Model(&models.DeviceToken{}).
		Where("user_id = ?", userID).
		Pluck("token", &tokens).Error
	if err != nil {
		log.Printf("🔥 Failed to load device tokens for user %s: %v", userID, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	if err := sendExpoPush(tokens, title, body, data); err != nil {
		log.Printf("🔥 Failed to send push to user %s: %v", userID, err)
		return
	}
	log.Printf("✅ Push sent to user %s (%d devices)", userID, len(tokens))
}

func sendExpoPush(tokens []string, title, body string, data map[string]interface{}) error {
	payload := expoPushMessage{
		To:    tokens,
		Title: title,
		Body:  body,
		Data:  data,
		Sound: "default",
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %v", err)
	}

	req, err := http.NewRequest("POST", expoPushURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create push request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send push request: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Expo push API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var pushResp expoPushResponse
	if err := json.Unmarshal(respBody, &pushResp); err != nil {
		return fmt.Errorf("failed to unmarshal push response: %v", err)
	}
	for _, ticket := range pushResp.Data {
		if ticket.Status != "ok" {
			log.Printf("⚠️ Expo push ticket error: %s", ticket.Message)
		}
	}

	return nil
}
