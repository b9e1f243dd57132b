package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog is an append-only event stream: xp_earned, badge_earned,
// profile_viewed and friends. Rows are never updated or deleted; they are
// read back only for time-windowed counting (e.g. badge eligibility).
type ActivityLog struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_activity_user_type" json:"user_id"`
	ActivityType string         `gorm:"size:30;not null;index:idx_activity_user_type" json:"activity_type"`
	Metadata     datatypes.JSON `json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

const (
	ActivityXPEarned      = "xp_earned"
	ActivityBadgeEarned   = "badge_earned"
	ActivityProfileViewed = "profile_viewed"
	ActivityMatchCreated  = "match_created"
	ActivityMessageSent   = "message_sent"
	ActivitySwipeMade     = "swipe_made"
)
