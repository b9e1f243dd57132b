package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null"`
	Content        string    `gorm:"type:text;not null"`
	ReadAt         *time.Time

	Sender       User         `gorm:"foreignkey:SenderID"`
	Conversation Conversation `gorm:"foreignkey:ConversationID"`

	CreatedAt time.Time
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
