package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestService opens a fresh in-memory sqlite database per test. The
// connection pool is pinned to one connection so every query sees the same
// in-memory database.
func newTestService(t *testing.T) *GamificationService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.ProfilePhoto{},
		&models.UserProgress{},
		&models.Quest{},
		&models.BadgeDefinition{},
		&models.ActivityLog{},
		&models.Match{},
		&models.Subscription{},
		&models.VerificationRequest{},
		&models.Referral{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewGamificationService(db)
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := models.User{
		FullName: "Test User",
		Email:    uuid.NewString() + "@example.com",
		Password: "not-a-real-hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

func createTestProfile(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.Profile {
	t.Helper()

	profile := models.Profile{UserID: userID}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return &profile
}

func countActivities(t *testing.T, db *gorm.DB, userID uuid.UUID, activityType string) int64 {
	t.Helper()

	var count int64
	err := db.Model(&models.ActivityLog{}).
		Where("user_id = ? AND activity_type = ?", userID, activityType).
		Count(&count).Error
	if err != nil {
		t.Fatalf("failed to count activities: %v", err)
	}
	return count
}
