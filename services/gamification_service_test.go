package services

import (
	"errors"
	"testing"

	"github.com/mwangik4/heartlink/models"
)

func TestAwardXP_FirstAwardCreatesProgress(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)

	res, err := svc.AwardXP(user.ID, 1000, "test award")
	if err != nil {
		t.Fatalf("AwardXP returned error: %v", err)
	}

	if res.NewXP != 1000 {
		t.Errorf("NewXP = %d, want 1000", res.NewXP)
	}
	if !res.LeveledUp {
		t.Error("LeveledUp = false, want true (1000 XP reaches level 2)")
	}
	if res.OldLevel != 1 || res.NewLevel != 2 {
		t.Errorf("levels = %d -> %d, want 1 -> 2", res.OldLevel, res.NewLevel)
	}
	if res.XPForNextLevel != 2500 {
		t.Errorf("XPForNextLevel = %d, want 2500", res.XPForNextLevel)
	}

	var progress models.UserProgress
	if err := svc.db.Where("user_id = ?", user.ID).First(&progress).Error; err != nil {
		t.Fatalf("progress row not created: %v", err)
	}
	if progress.XP != 1000 || progress.Level != 2 {
		t.Errorf("persisted progress = {XP: %d, Level: %d}, want {1000, 2}", progress.XP, progress.Level)
	}

	if got := countActivities(t, svc.db, user.ID, models.ActivityXPEarned); got != 1 {
		t.Errorf("xp_earned activity count = %d, want 1", got)
	}
}

func TestAwardXP_RejectsNonPositiveAmounts(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)

	for _, amount := range []int{0, -1, -500} {
		_, err := svc.AwardXP(user.ID, amount, "bad award")
		if !errors.Is(err, ErrInvalidXPAmount) {
			t.Errorf("AwardXP(%d) error = %v, want ErrInvalidXPAmount", amount, err)
		}
	}

	var count int64
	svc.db.Model(&models.UserProgress{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("progress rows after rejected awards = %d, want 0", count)
	}
}

func TestAwardXP_Accumulates(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)

	first, err := svc.AwardXP(user.ID, 600, "first")
	if err != nil {
		t.Fatalf("first AwardXP: %v", err)
	}
	if first.LeveledUp {
		t.Error("LeveledUp after 600 XP, want false (threshold is 1000)")
	}

	second, err := svc.AwardXP(user.ID, 600, "second")
	if err != nil {
		t.Fatalf("second AwardXP: %v", err)
	}
	if second.NewXP != 1200 {
		t.Errorf("NewXP = %d, want 1200", second.NewXP)
	}
	if !second.LeveledUp || second.NewLevel != 2 {
		t.Errorf("second award = {LeveledUp: %v, NewLevel: %d}, want level up to 2", second.LeveledUp, second.NewLevel)
	}

	if got := countActivities(t, svc.db, user.ID, models.ActivityXPEarned); got != 2 {
		t.Errorf("xp_earned activity count = %d, want 2", got)
	}
}

func TestGetProgress_CreateIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)

	first, err := svc.GetProgress(user.ID)
	if err != nil {
		t.Fatalf("first GetProgress: %v", err)
	}
	second, err := svc.GetProgress(user.ID)
	if err != nil {
		t.Fatalf("second GetProgress: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("GetProgress created two rows: %s and %s", first.ID, second.ID)
	}
	if second.Level != 1 || second.XP != 0 {
		t.Errorf("fresh progress = {Level: %d, XP: %d}, want {1, 0}", second.Level, second.XP)
	}
}
