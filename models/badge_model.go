package models

import (
	"time"
)

// BadgeDefinition is the global badge catalog, seeded once at startup from
// the static configuration in the gamification service. Only IsActive is
// ever written after seeding.
type BadgeDefinition struct {
	Slug        string `gorm:"size:50;primary_key" json:"slug"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	Icon        string `gorm:"size:50;not null" json:"icon"`
	Category    string `gorm:"size:50;not null" json:"category"`
	Rarity      string `gorm:"size:20;not null" json:"rarity"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
}
