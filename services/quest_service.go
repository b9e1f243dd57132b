package services

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/models"
	"gorm.io/gorm"
)

// QuestWithMeta is a quest row enriched with catalog display copy.
type QuestWithMeta struct {
	models.Quest
	Name        string `json:"name"`
	Description string `json:"description"`
}

// QuestProgressResult reports one progress update. Progress carries the
// uncapped computed value for display; the persisted value is clamped to the
// target.
type QuestProgressResult struct {
	Quest     *models.Quest `json:"quest"`
	Completed bool          `json:"completed"`
	Progress  int           `json:"progress"`
}

// GenerateDailyQuests issues the user's quest set for the day. If an
// unexpired set already exists it is returned unchanged, so calling this any
// number of times within one day is a no-op. Otherwise 3 distinct types are
// drawn from the catalog without replacement and created with progress 0,
// expiring at the end of the current calendar day.
func (s *GamificationService) GenerateDailyQuests(userID uuid.UUID) ([]QuestWithMeta, error) {
	now := time.Now()

	var existing []models.Quest
	if err := s.db.Where("user_id = ? AND expires_at > ?", userID, now).
		Order("created_at asc").
		Find(&existing).Error; err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return s.enrichQuests(existing), nil
	}

	picks := rand.Perm(len(questTypeOrder))[:dailyQuestCount]
	expiresAt := endOfDay(now)

	quests := make([]models.Quest, 0, dailyQuestCount)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, idx := range picks {
			questType := questTypeOrder[idx]
			cfg := s.quests[questType]
			quest := models.Quest{
				UserID:    userID,
				QuestType: questType,
				Progress:  0,
				Target:    cfg.Target,
				XPReward:  cfg.XPReward,
				ExpiresAt: expiresAt,
			}
			if err := tx.Create(&quest).Error; err != nil {
				return err
			}
			quests = append(quests, quest)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.enrichQuests(quests), nil
}

// UpdateQuestProgress advances the user's active quest of the given type.
// Having no matching active quest is a normal outcome, not an error: the
// result is nil and nothing happens. Completing the quest awards its XP in
// the same transaction as the quest patch.
func (s *GamificationService) UpdateQuestProgress(userID uuid.UUID, questType string, increment int) (*QuestProgressResult, error) {
	if increment <= 0 {
		increment = 1
	}

	var quest models.Quest
	err := s.db.Where("user_id = ? AND quest_type = ? AND completed_at IS NULL AND expires_at > ?",
		userID, questType, time.Now()).
		First(&quest).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	uncapped := quest.Progress + increment
	completed := uncapped >= quest.Target

	err = s.db.Transaction(func(tx *gorm.DB) error {
		quest.Progress = min(uncapped, quest.Target)
		if completed {
			now := time.Now()
			quest.CompletedAt = &now
		}
		if err := tx.Save(&quest).Error; err != nil {
			return err
		}
		if completed {
			reason := fmt.Sprintf("Completed quest: %s", questType)
			if _, err := s.awardXPTx(tx, userID, quest.XPReward, reason); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &QuestProgressResult{Quest: &quest, Completed: completed, Progress: uncapped}, nil
}

// CompleteQuest force-completes a quest regardless of its current progress
// and awards its XP. Calling it on an already-completed quest is a no-op
// returning nil.
func (s *GamificationService) CompleteQuest(questID uuid.UUID) (*QuestProgressResult, error) {
	var quest models.Quest
	if err := s.db.First(&quest, "id = ?", questID).Error; err != nil {
		return nil, err
	}
	if quest.CompletedAt != nil {
		return nil, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		quest.Progress = quest.Target
		quest.CompletedAt = &now
		if err := tx.Save(&quest).Error; err != nil {
			return err
		}
		reason := fmt.Sprintf("Completed quest: %s", quest.QuestType)
		_, err := s.awardXPTx(tx, quest.UserID, quest.XPReward, reason)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &QuestProgressResult{Quest: &quest, Completed: true, Progress: quest.Progress}, nil
}

func (s *GamificationService) enrichQuests(quests []models.Quest) []QuestWithMeta {
	out := make([]QuestWithMeta, 0, len(quests))
	for _, q := range quests {
		cfg := s.quests[q.QuestType]
		out = append(out, QuestWithMeta{Quest: q, Name: cfg.Name, Description: cfg.Description})
	}
	return out
}

// endOfDay returns 23:59:59.999 of t's calendar day in t's location.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
