package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Report struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ReporterID uuid.UUID  `gorm:"type:uuid;not null" json:"reporter_id"`
	ReportedID uuid.UUID  `gorm:"type:uuid;not null" json:"reported_id"`
	Reason     string     `gorm:"size:50;not null" json:"reason"`
	Details    *string    `gorm:"type:text" json:"details"`
	Status     string     `gorm:"size:20;not null;default:'open'" json:"status"` // open, resolved, dismissed
	ResolvedBy *uuid.UUID `gorm:"type:uuid" json:"resolved_by"`
	ResolvedAt *time.Time `json:"resolved_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Block struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BlockerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_block_pair" json:"blocker_id"`
	BlockedID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_block_pair" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *Block) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
