package services

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/models"
)

// Completeness weights. The checklist is fixed; the weights sum to 100.
const (
	completenessBio       = 20
	completenessPhoto     = 15
	completenessGallery   = 10 // three or more photos
	completenessGender    = 10
	completenessBirthDate = 10
	completenessCity      = 10
	completenessGoal      = 15
	completenessInterests = 10 // three or more interests
)

// ScoreCompleteness computes the weighted checklist score for a profile and
// its photos. Pure; the caller persists the result.
func ScoreCompleteness(profile *models.Profile, photoCount int) int {
	score := 0
	if profile.Bio != nil && *profile.Bio != "" {
		score += completenessBio
	}
	if photoCount >= 1 {
		score += completenessPhoto
	}
	if photoCount >= 3 {
		score += completenessGallery
	}
	if profile.Gender != nil && *profile.Gender != "" {
		score += completenessGender
	}
	if profile.BirthDate != nil {
		score += completenessBirthDate
	}
	if profile.City != nil && *profile.City != "" {
		score += completenessCity
	}
	if profile.RelationshipGoal != nil && *profile.RelationshipGoal != "" {
		score += completenessGoal
	}
	if len(profile.Interests) > 0 {
		var interests []string
		if err := json.Unmarshal(profile.Interests, &interests); err == nil && len(interests) >= 3 {
			score += completenessInterests
		}
	}
	return score
}

// RecalculateCompleteness rescores the user's profile and persists it. When
// the profile first reaches 100 it drives the complete_profile quest and the
// pending referral for this user, then runs a badge check.
func (s *GamificationService) RecalculateCompleteness(userID uuid.UUID) (int, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return 0, err
	}

	var photoCount int64
	if err := s.db.Model(&models.ProfilePhoto{}).
		Where("profile_id = ?", profile.ID).
		Count(&photoCount).Error; err != nil {
		return 0, err
	}

	oldScore := profile.Completeness
	newScore := ScoreCompleteness(&profile, int(photoCount))
	if newScore != oldScore {
		if err := s.db.Model(&models.Profile{}).
			Where("id = ?", profile.ID).
			Update("completeness", newScore).Error; err != nil {
			return 0, err
		}
	}

	if newScore >= 100 && oldScore < 100 {
		if _, err := s.UpdateQuestProgress(userID, QuestCompleteProfile, 1); err != nil {
			return newScore, err
		}
		CompleteReferralIfApplicable(s.db, s, userID)
		if _, err := s.CheckAndAwardBadges(userID); err != nil {
			return newScore, err
		}
	}

	return newScore, nil
}
