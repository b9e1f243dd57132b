package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/database"
	"github.com/mwangik4/heartlink/models"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

type MessagePayload struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *models.Message)

// RunHub fans persisted messages out to every connected participant of the
// message's conversation except the sender. One goroutine per process.
func RunHub() {
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
			touchLastActive(client.UserID)
		case client := <-Unregister:
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
			touchLastActive(client.UserID)
		case message := <-Broadcast:
			var participantIDs []uuid.UUID
			err := database.DB.
				Table("conversation_participants").
				Where("conversation_id = ?", message.ConversationID).
				Pluck("user_id", &participantIDs).Error
			if err != nil {
				log.Printf("Error fetching participant IDs for conversation %s: %v", message.ConversationID, err)
				continue
			}

			clientsMu.RLock()
			var stale []uuid.UUID
			for _, participantID := range participantIDs {
				if participantID == message.SenderID {
					continue
				}
				if conn, ok := clients[participantID]; ok {
					if err := conn.WriteJSON(message); err != nil {
						log.Printf("Error sending message to client %s: %v", participantID, err)
						conn.Close()
						stale = append(stale, participantID)
					}
				}
			}
			clientsMu.RUnlock()

			if len(stale) > 0 {
				clientsMu.Lock()
				for _, id := range stale {
					delete(clients, id)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// IsOnline reports whether the user currently has a websocket connection.
func IsOnline(userID uuid.UUID) bool {
	clientsMu.RLock()
	defer clientsMu.RUnlock()
	_, ok := clients[userID]
	return ok
}

func touchLastActive(userID uuid.UUID) {
	now := time.Now()
	if err := database.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_active_at", now).Error; err != nil {
		log.Printf("Error updating last_active_at for %s: %v", userID, err)
	}
}
