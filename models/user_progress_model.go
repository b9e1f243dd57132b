package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProgress is the per-user gamification record: accumulated XP, the
// level derived from it, and the badges earned so far. Exactly one row ever
// exists per user; it is created lazily on the first XP or badge award and
// never deleted.
type UserProgress struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;unique" json:"user_id"`

	// Level is always kept in sync with XP; the two are only ever written
	// together.
	Level int `gorm:"default:1" json:"level"`
	XP    int `gorm:"default:0" json:"xp"`

	// Badges holds badge slugs in the order they were earned. Membership is
	// the invariant; order is only for display.
	Badges []string `gorm:"serializer:json" json:"badges"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *UserProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// HasBadge reports whether the badge slug has already been earned.
func (p *UserProgress) HasBadge(slug string) bool {
	for _, b := range p.Badges {
		if b == slug {
			return true
		}
	}
	return false
}
