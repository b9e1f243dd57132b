package services

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mwangik4/heartlink/models"
	"gorm.io/gorm"
)

// BadgeAwardResult reports one badge grant attempt. Re-awarding a held badge
// is a defined no-op, not an error.
type BadgeAwardResult struct {
	Success    bool        `json:"success"`
	AlreadyHas bool        `json:"already_has"`
	BadgeSlug  string      `json:"badge_slug"`
	Config     BadgeConfig `json:"config"`
}

// badgeSnapshot is the point-in-time state every badge rule is evaluated
// against. It is loaded once per CheckAndAwardBadges call.
type badgeSnapshot struct {
	User          *models.User
	Profile       *models.Profile
	Verified      bool
	PremiumActive bool
	MatchCount    int64
	RecentViews   int64
}

// badgeRules are evaluated in order; each is an independent predicate.
// Badges are append-only: a rule going false later never revokes anything.
var badgeRules = []struct {
	Slug      string
	Satisfied func(*badgeSnapshot) bool
}{
	{BadgeEmailVerified, func(s *badgeSnapshot) bool {
		return s.User.EmailVerified
	}},
	{BadgeVerifiedProfile, func(s *badgeSnapshot) bool {
		return s.Verified
	}},
	{BadgeProfileComplete, func(s *badgeSnapshot) bool {
		return s.Profile != nil && s.Profile.Completeness >= 100
	}},
	{BadgePremiumMember, func(s *badgeSnapshot) bool {
		return s.PremiumActive
	}},
	{BadgeSeriousDater, func(s *badgeSnapshot) bool {
		return s.Profile != nil && s.Profile.RelationshipGoal != nil && *s.Profile.RelationshipGoal == "serious"
	}},
	{BadgeMatchmaker, func(s *badgeSnapshot) bool {
		return s.MatchCount >= 50
	}},
	{BadgePopular, func(s *badgeSnapshot) bool {
		return s.RecentViews >= 50
	}},
	{BadgeTopTier, func(s *badgeSnapshot) bool {
		return s.Profile != nil && s.Profile.Score >= 1500
	}},
}

// AwardBadge grants a badge to the user. Idempotent: a badge already held
// comes back with AlreadyHas set and no writes.
func (s *GamificationService) AwardBadge(userID uuid.UUID, slug string) (*BadgeAwardResult, error) {
	cfg, ok := s.badges[slug]
	if !ok {
		log.Printf("Warning: badge '%s' not in catalog, cannot award.", slug)
		return nil, gorm.ErrRecordNotFound
	}

	var result *BadgeAwardResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		progress, err := s.getOrCreateProgress(tx, userID)
		if err != nil {
			return err
		}

		if progress.HasBadge(slug) {
			result = &BadgeAwardResult{AlreadyHas: true, BadgeSlug: slug, Config: cfg}
			return nil
		}

		progress.Badges = append(progress.Badges, slug)
		if err := tx.Save(progress).Error; err != nil {
			return err
		}

		if err := logActivity(tx, userID, models.ActivityBadgeEarned, map[string]interface{}{
			"badge": slug,
		}); err != nil {
			return err
		}

		result = &BadgeAwardResult{Success: true, BadgeSlug: slug, Config: cfg}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CheckAndAwardBadges evaluates every badge rule against one snapshot of the
// user's state and grants whatever is newly satisfied. Returns the slugs
// awarded by this call only; already-held badges are silently skipped.
func (s *GamificationService) CheckAndAwardBadges(userID uuid.UUID) ([]string, error) {
	snapshot, err := s.loadBadgeSnapshot(userID)
	if err != nil {
		return nil, err
	}

	progress, err := s.getOrCreateProgress(s.db, userID)
	if err != nil {
		return nil, err
	}

	newlyAwarded := []string{}
	for _, rule := range badgeRules {
		if progress.HasBadge(rule.Slug) {
			continue
		}
		if !rule.Satisfied(snapshot) {
			continue
		}
		if _, err := s.AwardBadge(userID, rule.Slug); err != nil {
			return nil, err
		}
		newlyAwarded = append(newlyAwarded, rule.Slug)
	}
	return newlyAwarded, nil
}

func (s *GamificationService) loadBadgeSnapshot(userID uuid.UUID) (*badgeSnapshot, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	snapshot := &badgeSnapshot{User: &user}

	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		snapshot.Profile = &profile
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	var verifiedCount int64
	if err := s.db.Model(&models.VerificationRequest{}).
		Where("user_id = ? AND status = ?", userID, "approved").
		Count(&verifiedCount).Error; err != nil {
		return nil, err
	}
	snapshot.Verified = verifiedCount > 0

	var premiumCount int64
	if err := s.db.Model(&models.Subscription{}).
		Where("user_id = ? AND status = ? AND plan = ?", userID, "active", "premium").
		Count(&premiumCount).Error; err != nil {
		return nil, err
	}
	snapshot.PremiumActive = premiumCount > 0

	if err := s.db.Model(&models.Match{}).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Count(&snapshot.MatchCount).Error; err != nil {
		return nil, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	views, err := countActivitySince(s.db, userID, models.ActivityProfileViewed, weekAgo)
	if err != nil {
		return nil, err
	}
	snapshot.RecentViews = views

	return snapshot, nil
}

// SeedBadgeDefinitions writes the catalog into the badge_definitions table.
// Existing rows are left alone, so re-running at every boot is safe.
func (s *GamificationService) SeedBadgeDefinitions() error {
	for _, slug := range []string{
		BadgeEmailVerified, BadgeVerifiedProfile, BadgeProfileComplete,
		BadgePremiumMember, BadgeSeriousDater, BadgeMatchmaker,
		BadgePopular, BadgeTopTier,
	} {
		cfg := s.badges[slug]
		def := models.BadgeDefinition{
			Slug:        slug,
			Name:        cfg.Name,
			Description: cfg.Description,
			Icon:        cfg.Icon,
			Category:    cfg.Category,
			Rarity:      cfg.Rarity,
			IsActive:    true,
		}
		if err := s.db.Where("slug = ?", slug).FirstOrCreate(&def).Error; err != nil {
			return err
		}
	}
	return nil
}
