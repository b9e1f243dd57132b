package jobs

import (
	"log"
	"time"

	"github.com/mwangik4/heartlink/database"
	"github.com/mwangik4/heartlink/models"
	"github.com/mwangik4/heartlink/notifications"
)

func ExpireOverdueSubscriptions() {
	log.Println("Running job: ExpireOverdueSubscriptions...")

	now := time.Now()

	var overdue []models.Subscription
	err := database.DB.
		Preload("User").
		Where("status = ? AND expires_at < ?", "active", now).
		Find(&overdue).Error
	if err != nil {
		log.Printf("Error checking for overdue subscriptions: %v", err)
		return
	}

	if len(overdue) == 0 {
		log.Println("No overdue subscriptions found.")
		return
	}

	for _, sub := range overdue {
		sub.Status = "expired"
		if err := database.DB.Save(&sub).Error; err != nil {
			log.Printf("Error expiring subscription %s: %v", sub.ID, err)
			continue
		}

		emailSubject := "Your HeartLink subscription has expired"
		emailBody := "<h1>Subscription Expired</h1><p>Hi " + sub.User.FullName + ",</p><p>Your " + sub.Plan + " subscription has expired. Renew from the app to keep your premium perks.</p>"
		go notifications.SendEmail(sub.User.FullName, sub.User.Email, emailSubject, emailBody)
	}

	log.Printf("Expired %d subscription(s).", len(overdue))
}
