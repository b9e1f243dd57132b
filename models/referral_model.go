package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Referral tracks an invite: created pending at registration, completed
// (with an XP reward to the referrer) once the invited user finishes their
// profile.
type Referral struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReferrerID     uuid.UUID `gorm:"type:uuid;not null" json:"referrer_id"`
	ReferredUserID uuid.UUID `gorm:"type:uuid;not null;unique" json:"referred_user_id"`
	Status         string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	RewardXP       int       `gorm:"default:0" json:"reward_xp"`

	Referrer User `gorm:"foreignkey:ReferrerID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Referral) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
