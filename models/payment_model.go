package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payment struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key"`
	SubscriptionID    *uuid.UUID `gorm:"type:uuid;unique"`
	ProviderOrderID   *string    `gorm:"size:255;unique"`
	MerchantRequestID *string    `gorm:"size:255;unique"`
	Amount            float64    `gorm:"type:numeric(10,2);not null"`
	Currency          string     `gorm:"size:3"`
	Provider          string     `gorm:"size:50;not null"`
	ProviderTxnID     *string    `gorm:"size:255;unique"`
	Status            string     `gorm:"size:20;not null"`

	Subscription Subscription `gorm:"foreignkey:SubscriptionID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
