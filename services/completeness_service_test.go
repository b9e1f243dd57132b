package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mwangik4/heartlink/models"
	"gorm.io/datatypes"
)

func strPtr(s string) *string { return &s }

func fullProfile(t *testing.T) *models.Profile {
	t.Helper()

	interests, err := json.Marshal([]string{"hiking", "cooking", "jazz"})
	if err != nil {
		t.Fatalf("marshal interests: %v", err)
	}
	birthDate := time.Date(1995, 4, 12, 0, 0, 0, 0, time.UTC)
	return &models.Profile{
		Bio:              strPtr("Hello there"),
		Gender:           strPtr("female"),
		BirthDate:        &birthDate,
		City:             strPtr("Nairobi"),
		RelationshipGoal: strPtr("serious"),
		Interests:        datatypes.JSON(interests),
	}
}

func TestScoreCompleteness(t *testing.T) {
	cases := []struct {
		name       string
		mutate     func(*models.Profile)
		photoCount int
		want       int
	}{
		{"empty profile", func(p *models.Profile) { *p = models.Profile{} }, 0, 0},
		{"everything with gallery", func(p *models.Profile) {}, 3, 100},
		{"single photo loses gallery bonus", func(p *models.Profile) {}, 1, 90},
		{"no bio", func(p *models.Profile) { p.Bio = nil }, 3, 80},
		{"empty bio counts as missing", func(p *models.Profile) { p.Bio = strPtr("") }, 3, 80},
		{"no relationship goal", func(p *models.Profile) { p.RelationshipGoal = nil }, 3, 85},
		{"two interests miss the bonus", func(p *models.Profile) {
			raw, _ := json.Marshal([]string{"hiking", "cooking"})
			p.Interests = datatypes.JSON(raw)
		}, 3, 90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := fullProfile(t)
			tc.mutate(profile)
			if got := ScoreCompleteness(profile, tc.photoCount); got != tc.want {
				t.Errorf("ScoreCompleteness = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRecalculateCompleteness_PersistsScore(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)
	profile := createTestProfile(t, svc.db, user.ID)

	profile.Bio = strPtr("short bio")
	if err := svc.db.Save(profile).Error; err != nil {
		t.Fatalf("save profile: %v", err)
	}

	score, err := svc.RecalculateCompleteness(user.ID)
	if err != nil {
		t.Fatalf("RecalculateCompleteness: %v", err)
	}
	if score != 20 {
		t.Errorf("score = %d, want 20 (bio only)", score)
	}

	var stored models.Profile
	svc.db.First(&stored, "id = ?", profile.ID)
	if stored.Completeness != 20 {
		t.Errorf("persisted completeness = %d, want 20", stored.Completeness)
	}
}

func TestRecalculateCompleteness_ReachingFullDrivesQuestAndBadge(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)

	full := fullProfile(t)
	full.UserID = user.ID
	if err := svc.db.Create(full).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	for i := 0; i < 3; i++ {
		photo := models.ProfilePhoto{ProfileID: full.ID, URL: "https://cdn.example.com/p.jpg", Position: i}
		if err := svc.db.Create(&photo).Error; err != nil {
			t.Fatalf("create photo %d: %v", i, err)
		}
	}
	activeQuest(t, svc, user.ID, QuestCompleteProfile, 0, 1, 150)

	score, err := svc.RecalculateCompleteness(user.ID)
	if err != nil {
		t.Fatalf("RecalculateCompleteness: %v", err)
	}
	if score != 100 {
		t.Fatalf("score = %d, want 100", score)
	}

	var quest models.Quest
	svc.db.Where("user_id = ? AND quest_type = ?", user.ID, QuestCompleteProfile).First(&quest)
	if quest.CompletedAt == nil {
		t.Error("complete_profile quest not completed at 100%")
	}

	progress, err := svc.GetProgress(user.ID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if progress.XP != 150 {
		t.Errorf("XP = %d, want 150 from the quest reward", progress.XP)
	}
	if !progress.HasBadge(BadgeProfileComplete) {
		t.Error("profile_complete badge not awarded at 100%")
	}
}

func TestRecalculateCompleteness_PaysOutPendingReferral(t *testing.T) {
	svc := newTestService(t)
	referrer := createTestUser(t, svc.db)
	invited := createTestUser(t, svc.db)

	referral := models.Referral{ReferrerID: referrer.ID, ReferredUserID: invited.ID, Status: "pending"}
	if err := svc.db.Create(&referral).Error; err != nil {
		t.Fatalf("create referral: %v", err)
	}

	full := fullProfile(t)
	full.UserID = invited.ID
	if err := svc.db.Create(full).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	for i := 0; i < 3; i++ {
		photo := models.ProfilePhoto{ProfileID: full.ID, URL: "https://cdn.example.com/p.jpg", Position: i}
		if err := svc.db.Create(&photo).Error; err != nil {
			t.Fatalf("create photo %d: %v", i, err)
		}
	}

	if _, err := svc.RecalculateCompleteness(invited.ID); err != nil {
		t.Fatalf("RecalculateCompleteness: %v", err)
	}

	var stored models.Referral
	svc.db.First(&stored, "id = ?", referral.ID)
	if stored.Status != "completed" {
		t.Errorf("referral status = %q, want completed", stored.Status)
	}
	if stored.RewardXP != ReferralRewardXP {
		t.Errorf("referral reward = %d, want %d", stored.RewardXP, ReferralRewardXP)
	}

	referrerProgress, err := svc.GetProgress(referrer.ID)
	if err != nil {
		t.Fatalf("GetProgress(referrer): %v", err)
	}
	if referrerProgress.XP != ReferralRewardXP {
		t.Errorf("referrer XP = %d, want %d", referrerProgress.XP, ReferralRewardXP)
	}

	// Recalculating again must not pay twice.
	if _, err := svc.RecalculateCompleteness(invited.ID); err != nil {
		t.Fatalf("second RecalculateCompleteness: %v", err)
	}
	referrerProgress, _ = svc.GetProgress(referrer.ID)
	if referrerProgress.XP != ReferralRewardXP {
		t.Errorf("referrer XP after second recalc = %d, want %d", referrerProgress.XP, ReferralRewardXP)
	}
}
