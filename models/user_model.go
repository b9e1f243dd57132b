package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'member'" json:"role"`

	EmailVerified   bool    `gorm:"default:false" json:"email_verified"`
	EmailVerifyCode *string `gorm:"size:10" json:"-"`

	InviteCode     *string `gorm:"size:10;unique" json:"invite_code"`
	ReferredByCode *string `gorm:"size:10" json:"referred_by_code"`

	ResetPasswordToken          *string    `gorm:"size:255;unique" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`

	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastActiveAt *time.Time `json:"last_active_at"`

	Profile       *Profile        `json:"profile,omitempty"`
	Conversations []*Conversation `gorm:"many2many:conversation_participants;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IDs are generated in the app rather than by the database so the same
// models work against Postgres in production and sqlite in tests.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
