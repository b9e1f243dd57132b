package services

import (
	"errors"
	"testing"
	"time"

	"github.com/mwangik4/heartlink/models"
	"gorm.io/gorm"
)

func TestAwardBadge_Idempotent(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)

	first, err := svc.AwardBadge(user.ID, BadgeEmailVerified)
	if err != nil {
		t.Fatalf("first AwardBadge: %v", err)
	}
	if !first.Success || first.AlreadyHas {
		t.Errorf("first award = {Success: %v, AlreadyHas: %v}, want {true, false}", first.Success, first.AlreadyHas)
	}

	second, err := svc.AwardBadge(user.ID, BadgeEmailVerified)
	if err != nil {
		t.Fatalf("second AwardBadge: %v", err)
	}
	if second.Success || !second.AlreadyHas {
		t.Errorf("second award = {Success: %v, AlreadyHas: %v}, want {false, true}", second.Success, second.AlreadyHas)
	}

	progress, err := svc.GetProgress(user.ID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if len(progress.Badges) != 1 {
		t.Errorf("badge count = %d, want 1 (no duplicate entries)", len(progress.Badges))
	}
	if got := countActivities(t, svc.db, user.ID, models.ActivityBadgeEarned); got != 1 {
		t.Errorf("badge_earned activity count = %d, want 1", got)
	}
}

func TestAwardBadge_UnknownSlug(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)

	_, err := svc.AwardBadge(user.ID, "no_such_badge")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("error = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestCheckAndAwardBadges_SnapshotRules(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)
	profile := createTestProfile(t, svc.db, user.ID)

	goal := "serious"
	profile.RelationshipGoal = &goal
	profile.Completeness = 100
	profile.Score = 1500
	if err := svc.db.Save(profile).Error; err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if err := svc.db.Model(user).Update("email_verified", true).Error; err != nil {
		t.Fatalf("mark email verified: %v", err)
	}

	awarded, err := svc.CheckAndAwardBadges(user.ID)
	if err != nil {
		t.Fatalf("CheckAndAwardBadges: %v", err)
	}

	want := map[string]bool{
		BadgeEmailVerified:   true,
		BadgeProfileComplete: true,
		BadgeSeriousDater:    true,
		BadgeTopTier:         true,
	}
	if len(awarded) != len(want) {
		t.Errorf("awarded = %v, want exactly %d badges", awarded, len(want))
	}
	for _, slug := range awarded {
		if !want[slug] {
			t.Errorf("unexpected badge %q awarded", slug)
		}
	}

	// A second check finds nothing new.
	again, err := svc.CheckAndAwardBadges(user.ID)
	if err != nil {
		t.Fatalf("second CheckAndAwardBadges: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second check awarded %v, want none", again)
	}
}

func TestCheckAndAwardBadges_AppendOnly(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)
	profile := createTestProfile(t, svc.db, user.ID)

	profile.Completeness = 100
	if err := svc.db.Save(profile).Error; err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if _, err := svc.CheckAndAwardBadges(user.ID); err != nil {
		t.Fatalf("first check: %v", err)
	}

	// The profile regresses below the rule's bar; the badge stays.
	if err := svc.db.Model(profile).Update("completeness", 40).Error; err != nil {
		t.Fatalf("downgrade profile: %v", err)
	}
	if _, err := svc.CheckAndAwardBadges(user.ID); err != nil {
		t.Fatalf("second check: %v", err)
	}

	progress, err := svc.GetProgress(user.ID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if !progress.HasBadge(BadgeProfileComplete) {
		t.Error("profile_complete badge was revoked after the profile regressed")
	}
}

func TestCheckAndAwardBadges_PopularFromRecentViews(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)
	createTestProfile(t, svc.db, user.ID)

	for i := 0; i < 50; i++ {
		if err := svc.RecordActivity(user.ID, models.ActivityProfileViewed, map[string]interface{}{"viewer": "someone"}); err != nil {
			t.Fatalf("record view %d: %v", i, err)
		}
	}

	awarded, err := svc.CheckAndAwardBadges(user.ID)
	if err != nil {
		t.Fatalf("CheckAndAwardBadges: %v", err)
	}

	found := false
	for _, slug := range awarded {
		if slug == BadgePopular {
			found = true
		}
	}
	if !found {
		t.Errorf("popular badge not awarded after 50 recent views; got %v", awarded)
	}
}

func TestCheckAndAwardBadges_PremiumMember(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)
	createTestProfile(t, svc.db, user.ID)

	starts := time.Now()
	expires := starts.AddDate(0, 1, 0)
	sub := models.Subscription{
		UserID:    user.ID,
		Plan:      "premium",
		Status:    "active",
		StartsAt:  &starts,
		ExpiresAt: &expires,
	}
	if err := svc.db.Create(&sub).Error; err != nil {
		t.Fatalf("create subscription: %v", err)
	}

	awarded, err := svc.CheckAndAwardBadges(user.ID)
	if err != nil {
		t.Fatalf("CheckAndAwardBadges: %v", err)
	}
	found := false
	for _, slug := range awarded {
		if slug == BadgePremiumMember {
			found = true
		}
	}
	if !found {
		t.Errorf("premium_member not awarded with an active premium subscription; got %v", awarded)
	}
}

func TestSeedBadgeDefinitions_RerunSafe(t *testing.T) {
	svc := newTestService(t)

	if err := svc.SeedBadgeDefinitions(); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := svc.SeedBadgeDefinitions(); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var count int64
	svc.db.Model(&models.BadgeDefinition{}).Count(&count)
	if count != int64(len(svc.badges)) {
		t.Errorf("badge definition rows = %d, want %d", count, len(svc.badges))
	}
}
