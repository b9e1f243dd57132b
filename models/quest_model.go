package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quest is one time-boxed daily task for one user. A quest is active while
// it has no CompletedAt and ExpiresAt is in the future; once the day rolls
// over an incomplete quest is permanently inert. Rows are never deleted.
type Quest struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	QuestType string    `gorm:"size:30;not null" json:"quest_type"`

	// Progress is clamped to [0, Target]; once CompletedAt is set it equals
	// Target and stays there.
	Progress int `gorm:"default:0" json:"progress"`
	Target   int `gorm:"not null" json:"target"`
	XPReward int `gorm:"not null" json:"xp_reward"`

	ExpiresAt   time.Time  `gorm:"not null" json:"expires_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (q *Quest) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
