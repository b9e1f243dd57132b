package services

import (
	"log"

	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/models"
	"gorm.io/gorm"
)

// ReferralRewardXP goes to the referrer when the person they invited
// finishes their profile.
const ReferralRewardXP = 100

// CompleteReferralIfApplicable pays out the pending referral for userID, if
// one exists. Errors are logged, not returned: a referral payout must never
// fail the action that triggered it.
func CompleteReferralIfApplicable(db *gorm.DB, g *GamificationService, userID uuid.UUID) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var referral models.Referral
		if err := tx.Where("referred_user_id = ? AND status = ?", userID, "pending").First(&referral).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}

		referral.Status = "completed"
		referral.RewardXP = ReferralRewardXP
		if err := tx.Save(&referral).Error; err != nil {
			return err
		}

		_, err := g.awardXPTx(tx, referral.ReferrerID, ReferralRewardXP, "Invited a friend")
		return err
	})

	if err != nil {
		log.Printf("🔥 Error completing referral for user %s: %v", userID, err)
	}
}
