package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Profile struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;unique" json:"user_id"`

	Bio              *string        `gorm:"type:text" json:"bio"`
	Gender           *string        `gorm:"size:20" json:"gender"`
	InterestedIn     *string        `gorm:"size:20" json:"interested_in"`
	BirthDate        *time.Time     `json:"birth_date"`
	City             *string        `gorm:"size:100" json:"city"`
	RelationshipGoal *string        `gorm:"size:30" json:"relationship_goal"`
	Interests        datatypes.JSON `json:"interests"`

	// Completeness is the weighted checklist score (0..100), recomputed on
	// every profile or photo mutation.
	Completeness int `gorm:"default:0" json:"completeness"`

	// Score is the popularity rating adjusted by likes and passes.
	Score int `gorm:"default:1200" json:"score"`

	Photos []ProfilePhoto `json:"photos,omitempty"`
	User   User           `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ProfilePhoto struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null" json:"profile_id"`
	URL       string    `gorm:"size:255;not null" json:"url"`
	Position  int       `gorm:"default:0" json:"position"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *ProfilePhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
