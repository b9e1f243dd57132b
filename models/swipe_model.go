package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Swipe struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SwiperID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_swipe_pair" json:"swiper_id"`
	TargetID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_swipe_pair" json:"target_id"`
	Direction string    `gorm:"size:10;not null" json:"direction"` // "like" or "pass"
	CreatedAt time.Time `json:"created_at"`
}

func (s *Swipe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
