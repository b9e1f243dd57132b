package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Match struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserAID        uuid.UUID  `gorm:"type:uuid;not null" json:"user_a_id"`
	UserBID        uuid.UUID  `gorm:"type:uuid;not null" json:"user_b_id"`
	ConversationID *uuid.UUID `gorm:"type:uuid" json:"conversation_id"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`

	UserA User `gorm:"foreignkey:UserAID" json:"-"`
	UserB User `gorm:"foreignkey:UserBID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
