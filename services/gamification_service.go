package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	// ErrInvalidXPAmount is returned when an XP award is zero or negative.
	// XP only ever goes up.
	ErrInvalidXPAmount = errors.New("xp amount must be a positive integer")

	// ErrProgressUnavailable means the lazily-created progress row could not
	// be created or read back. Internal, never shown to users as-is.
	ErrProgressUnavailable = errors.New("failed to load or create user progress")
)

// GamificationService owns XP, levels, daily quests and badges. The quest and
// badge catalogs are loaded once at construction and never mutated.
type GamificationService struct {
	db     *gorm.DB
	quests QuestCatalog
	badges BadgeCatalog
}

func NewGamificationService(db *gorm.DB) *GamificationService {
	return &GamificationService{
		db:     db,
		quests: DefaultQuestCatalog(),
		badges: DefaultBadgeCatalog(),
	}
}

// Gamification is the process-wide instance, set from main after the
// database is connected.
var Gamification *GamificationService

func InitGamification(db *gorm.DB) {
	Gamification = NewGamificationService(db)
}

// XPAwardResult reports the outcome of one XP award.
type XPAwardResult struct {
	NewXP          int  `json:"new_xp"`
	LeveledUp      bool `json:"leveled_up"`
	NewLevel       int  `json:"new_level"`
	OldLevel       int  `json:"old_level"`
	XPForNextLevel int  `json:"xp_for_next_level"`
}

// AwardXP adds amount XP to the user, recomputes the level, and appends an
// xp_earned activity entry, all in one transaction. The progress row is
// created on first use.
func (s *GamificationService) AwardXP(userID uuid.UUID, amount int, reason string) (*XPAwardResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidXPAmount
	}

	var result *XPAwardResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res, err := s.awardXPTx(tx, userID, amount, reason)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// awardXPTx is AwardXP inside an existing transaction, so quest completion
// can patch the quest and award its XP as one unit.
func (s *GamificationService) awardXPTx(tx *gorm.DB, userID uuid.UUID, amount int, reason string) (*XPAwardResult, error) {
	progress, err := s.getOrCreateProgress(tx, userID)
	if err != nil {
		return nil, err
	}

	oldLevel := progress.Level
	progress.XP += amount
	progress.Level = LevelFromXP(progress.XP)

	if err := tx.Save(progress).Error; err != nil {
		return nil, err
	}

	if err := logActivity(tx, userID, models.ActivityXPEarned, map[string]interface{}{
		"amount": amount,
		"reason": reason,
	}); err != nil {
		return nil, err
	}

	return &XPAwardResult{
		NewXP:          progress.XP,
		LeveledUp:      progress.Level > oldLevel,
		NewLevel:       progress.Level,
		OldLevel:       oldLevel,
		XPForNextLevel: XPThreshold(progress.Level + 1),
	}, nil
}

// getOrCreateProgress is the single idempotent get-or-create for the user's
// progress row.
func (s *GamificationService) getOrCreateProgress(tx *gorm.DB, userID uuid.UUID) (*models.UserProgress, error) {
	var progress models.UserProgress
	err := tx.Where("user_id = ?", userID).
		Attrs(models.UserProgress{UserID: userID, Level: 1, XP: 0, Badges: []string{}}).
		FirstOrCreate(&progress).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProgressUnavailable, err)
	}
	return &progress, nil
}

// GetProgress returns the user's progress row, creating it if absent.
func (s *GamificationService) GetProgress(userID uuid.UUID) (*models.UserProgress, error) {
	return s.getOrCreateProgress(s.db, userID)
}

// logActivity appends one entry to the activity log. The log is write-only
// from here; nothing in this service ever mutates past entries.
func logActivity(tx *gorm.DB, userID uuid.UUID, activityType string, metadata map[string]interface{}) error {
	payload, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	entry := models.ActivityLog{
		UserID:       userID,
		ActivityType: activityType,
		Metadata:     datatypes.JSON(payload),
	}
	return tx.Create(&entry).Error
}

// RecordActivity appends an activity entry outside any gamification flow
// (profile views, swipes and the like).
func (s *GamificationService) RecordActivity(userID uuid.UUID, activityType string, metadata map[string]interface{}) error {
	return logActivity(s.db, userID, activityType, metadata)
}

// countActivitySince counts a user's activity entries of one type in the
// trailing window starting at since.
func countActivitySince(tx *gorm.DB, userID uuid.UUID, activityType string, since time.Time) (int64, error) {
	var count int64
	err := tx.Model(&models.ActivityLog{}).
		Where("user_id = ? AND activity_type = ? AND created_at >= ?", userID, activityType, since).
		Count(&count).Error
	return count, err
}
