package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/models"
)

func activeQuest(t *testing.T, svc *GamificationService, userID uuid.UUID, questType string, progress, target, reward int) *models.Quest {
	t.Helper()

	quest := models.Quest{
		UserID:    userID,
		QuestType: questType,
		Progress:  progress,
		Target:    target,
		XPReward:  reward,
		ExpiresAt: endOfDay(time.Now()),
	}
	if err := svc.db.Create(&quest).Error; err != nil {
		t.Fatalf("failed to create quest: %v", err)
	}
	return &quest
}

func TestGenerateDailyQuests_IssuesThreeDistinctTypes(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)

	quests, err := svc.GenerateDailyQuests(user.ID)
	if err != nil {
		t.Fatalf("GenerateDailyQuests: %v", err)
	}
	if len(quests) != dailyQuestCount {
		t.Fatalf("quest count = %d, want %d", len(quests), dailyQuestCount)
	}

	seen := make(map[string]bool)
	for _, q := range quests {
		if seen[q.QuestType] {
			t.Errorf("duplicate quest type %q in daily set", q.QuestType)
		}
		seen[q.QuestType] = true

		cfg, ok := svc.quests[q.QuestType]
		if !ok {
			t.Errorf("quest type %q not in catalog", q.QuestType)
			continue
		}
		if q.Target != cfg.Target || q.XPReward != cfg.XPReward {
			t.Errorf("%s = {Target: %d, XPReward: %d}, want {%d, %d}", q.QuestType, q.Target, q.XPReward, cfg.Target, cfg.XPReward)
		}
		if q.Progress != 0 {
			t.Errorf("%s starts at progress %d, want 0", q.QuestType, q.Progress)
		}
		if q.Name == "" || q.Description == "" {
			t.Errorf("%s missing catalog copy", q.QuestType)
		}
	}
}

func TestGenerateDailyQuests_IdempotentWithinDay(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)

	first, err := svc.GenerateDailyQuests(user.ID)
	if err != nil {
		t.Fatalf("first GenerateDailyQuests: %v", err)
	}
	second, err := svc.GenerateDailyQuests(user.ID)
	if err != nil {
		t.Fatalf("second GenerateDailyQuests: %v", err)
	}

	if len(second) != len(first) {
		t.Fatalf("second call returned %d quests, want %d", len(second), len(first))
	}
	ids := make(map[uuid.UUID]bool)
	for _, q := range first {
		ids[q.ID] = true
	}
	for _, q := range second {
		if !ids[q.ID] {
			t.Errorf("second call returned new quest %s (%s)", q.ID, q.QuestType)
		}
	}

	var total int64
	svc.db.Model(&models.Quest{}).Where("user_id = ?", user.ID).Count(&total)
	if total != int64(dailyQuestCount) {
		t.Errorf("quest rows after two calls = %d, want %d", total, dailyQuestCount)
	}
}

func TestUpdateQuestProgress_PartialIncrement(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)
	activeQuest(t, svc, user.ID, QuestSendMessages, 0, 5, 100)

	res, err := svc.UpdateQuestProgress(user.ID, QuestSendMessages, 1)
	if err != nil {
		t.Fatalf("UpdateQuestProgress: %v", err)
	}
	if res == nil {
		t.Fatal("result is nil for an active quest")
	}
	if res.Completed {
		t.Error("Completed = true at 1/5")
	}
	if res.Progress != 1 {
		t.Errorf("Progress = %d, want 1", res.Progress)
	}
	if got := countActivities(t, svc.db, user.ID, models.ActivityXPEarned); got != 0 {
		t.Errorf("xp_earned count = %d, want 0 before completion", got)
	}
}

func TestUpdateQuestProgress_OvershootClampsAndAwardsOnce(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)
	quest := activeQuest(t, svc, user.ID, QuestSendMessages, 4, 5, 100)

	res, err := svc.UpdateQuestProgress(user.ID, QuestSendMessages, 10)
	if err != nil {
		t.Fatalf("UpdateQuestProgress: %v", err)
	}
	if !res.Completed {
		t.Error("Completed = false, want true")
	}
	// The returned progress is the raw computed value; only the stored row
	// is clamped.
	if res.Progress != 14 {
		t.Errorf("returned Progress = %d, want 14", res.Progress)
	}

	var stored models.Quest
	if err := svc.db.First(&stored, "id = ?", quest.ID).Error; err != nil {
		t.Fatalf("reload quest: %v", err)
	}
	if stored.Progress != 5 {
		t.Errorf("stored Progress = %d, want clamped to 5", stored.Progress)
	}
	if stored.CompletedAt == nil {
		t.Error("CompletedAt not set on completion")
	}

	progress, err := svc.GetProgress(user.ID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if progress.XP != 100 {
		t.Errorf("XP after completion = %d, want 100", progress.XP)
	}
	if got := countActivities(t, svc.db, user.ID, models.ActivityXPEarned); got != 1 {
		t.Errorf("xp_earned count = %d, want exactly 1", got)
	}
}

func TestUpdateQuestProgress_CompletedQuestIsInert(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)
	quest := activeQuest(t, svc, user.ID, QuestSwipeProfiles, 9, 10, 50)

	if _, err := svc.UpdateQuestProgress(user.ID, QuestSwipeProfiles, 1); err != nil {
		t.Fatalf("completing update: %v", err)
	}

	res, err := svc.UpdateQuestProgress(user.ID, QuestSwipeProfiles, 1)
	if err != nil {
		t.Fatalf("post-completion update: %v", err)
	}
	if res != nil {
		t.Errorf("update on completed quest returned %+v, want nil", res)
	}

	var stored models.Quest
	svc.db.First(&stored, "id = ?", quest.ID)
	if stored.Progress != 10 {
		t.Errorf("stored Progress = %d, want 10", stored.Progress)
	}
	if got := countActivities(t, svc.db, user.ID, models.ActivityXPEarned); got != 1 {
		t.Errorf("xp_earned count = %d, want 1 (no double award)", got)
	}
}

func TestUpdateQuestProgress_NoActiveQuest(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)

	res, err := svc.UpdateQuestProgress(user.ID, QuestGetReplies, 1)
	if err != nil {
		t.Fatalf("UpdateQuestProgress: %v", err)
	}
	if res != nil {
		t.Errorf("result = %+v, want nil when no active quest of that type exists", res)
	}
}

func TestCompleteQuest_ForceCompletesAndIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	user := createTestUser(t, svc.db)
	quest := activeQuest(t, svc, user.ID, QuestGetReplies, 1, 3, 120)

	res, err := svc.CompleteQuest(quest.ID)
	if err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}
	if !res.Completed || res.Progress != 3 {
		t.Errorf("result = {Completed: %v, Progress: %d}, want {true, 3}", res.Completed, res.Progress)
	}

	again, err := svc.CompleteQuest(quest.ID)
	if err != nil {
		t.Fatalf("second CompleteQuest: %v", err)
	}
	if again != nil {
		t.Errorf("second completion returned %+v, want nil", again)
	}

	progress, _ := svc.GetProgress(user.ID)
	if progress.XP != 120 {
		t.Errorf("XP = %d, want 120 (awarded exactly once)", progress.XP)
	}
}

func TestEndOfDay_SameCalendarDay(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	eod := endOfDay(now)

	if !eod.After(now) {
		t.Error("endOfDay is not after the input time")
	}
	y, m, d := eod.Date()
	if y != 2025 || m != time.June || d != 15 {
		t.Errorf("endOfDay moved to a different day: %v", eod)
	}
	if eod.Hour() != 23 || eod.Minute() != 59 || eod.Second() != 59 {
		t.Errorf("endOfDay = %v, want 23:59:59", eod)
	}
}
