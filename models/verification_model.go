package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VerificationRequest struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	SelfieURL  string     `gorm:"size:255;not null" json:"selfie_url"`
	Status     string     `gorm:"size:20;not null;default:'pending'" json:"status"` // pending, approved, rejected
	ReviewedBy *uuid.UUID `gorm:"type:uuid" json:"reviewed_by"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	Notes      *string    `gorm:"type:text" json:"notes"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (v *VerificationRequest) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
