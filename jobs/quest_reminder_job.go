package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/database"
	"github.com/mwangik4/heartlink/notifications"
)

// SendQuestReminders nudges users who still have unfinished daily quests.
// Scheduled for the evening so the day's quests are about to expire.
func SendQuestReminders() {
	log.Println("Running job: SendQuestReminders...")

	now := time.Now()

	type pendingRow struct {
		UserID    uuid.UUID
		Remaining int
	}

	var rows []pendingRow
	err := database.DB.
		Table("quests").
		Select("user_id, count(*) as remaining").
		Where("completed_at IS NULL AND expires_at > ?", now).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		log.Printf("Error checking for pending quests: %v", err)
		return
	}

	if len(rows) == 0 {
		return
	}

	for _, row := range rows {
		body := fmt.Sprintf("You have %d quest(s) left today. Finish them before midnight to earn XP!", row.Remaining)
		go notifications.SendPush(row.UserID, "Daily quests expiring soon", body, map[string]interface{}{
			"type": "quest_reminder",
		})
	}

	log.Printf("Queued quest reminders for %d user(s).", len(rows))
}
