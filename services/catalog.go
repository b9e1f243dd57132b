package services

// QuestConfig is the fixed (target, reward, copy) tuple for one quest type.
type QuestConfig struct {
	Name        string
	Description string
	Target      int
	XPReward    int
}

// QuestCatalog maps quest type keys to their configuration. It is built once
// at startup and never mutated; the gamification service holds it by value.
type QuestCatalog map[string]QuestConfig

const (
	QuestCompleteProfile = "complete_profile"
	QuestSendMessages    = "send_messages"
	QuestSwipeProfiles   = "swipe_profiles"
	QuestGetReplies      = "get_replies"
	QuestUpdatePhoto     = "update_photo"
)

// questTypeOrder fixes the iteration order when sampling daily quests.
var questTypeOrder = []string{
	QuestCompleteProfile,
	QuestSendMessages,
	QuestSwipeProfiles,
	QuestGetReplies,
	QuestUpdatePhoto,
}

// dailyQuestCount is how many quests each user gets per calendar day.
const dailyQuestCount = 3

func DefaultQuestCatalog() QuestCatalog {
	return QuestCatalog{
		QuestCompleteProfile: {
			Name:        "Profile Perfectionist",
			Description: "Get your profile to 100% completeness",
			Target:      1,
			XPReward:    150,
		},
		QuestSendMessages: {
			Name:        "Conversation Starter",
			Description: "Send 5 messages to your matches",
			Target:      5,
			XPReward:    100,
		},
		QuestSwipeProfiles: {
			Name:        "Explorer",
			Description: "Swipe on 10 profiles",
			Target:      10,
			XPReward:    50,
		},
		QuestGetReplies: {
			Name:        "Charmer",
			Description: "Get 3 replies to your messages",
			Target:      3,
			XPReward:    120,
		},
		QuestUpdatePhoto: {
			Name:        "Fresh Look",
			Description: "Add or update a profile photo",
			Target:      1,
			XPReward:    80,
		},
	}
}

// BadgeConfig is the display metadata for one badge slug.
type BadgeConfig struct {
	Name        string
	Description string
	Icon        string
	Category    string
	Rarity      string
}

// BadgeCatalog maps badge slugs to their configuration. Like the quest
// catalog it is immutable after startup.
type BadgeCatalog map[string]BadgeConfig

const (
	BadgeEmailVerified   = "email_verified"
	BadgeVerifiedProfile = "verified_profile"
	BadgeProfileComplete = "profile_complete"
	BadgePremiumMember   = "premium_member"
	BadgeSeriousDater    = "serious_dater"
	BadgeMatchmaker      = "matchmaker"
	BadgePopular         = "popular"
	BadgeTopTier         = "top_tier"
)

func DefaultBadgeCatalog() BadgeCatalog {
	return BadgeCatalog{
		BadgeEmailVerified: {
			Name:        "Email Verified",
			Description: "Confirmed their email address",
			Icon:        "📧",
			Category:    "trust",
			Rarity:      "common",
		},
		BadgeVerifiedProfile: {
			Name:        "Verified Profile",
			Description: "Passed selfie verification",
			Icon:        "✔️",
			Category:    "trust",
			Rarity:      "uncommon",
		},
		BadgeProfileComplete: {
			Name:        "All Filled In",
			Description: "Reached 100% profile completeness",
			Icon:        "📝",
			Category:    "profile",
			Rarity:      "common",
		},
		BadgePremiumMember: {
			Name:        "Premium Member",
			Description: "Holds an active premium subscription",
			Icon:        "💎",
			Category:    "membership",
			Rarity:      "rare",
		},
		BadgeSeriousDater: {
			Name:        "Serious Dater",
			Description: "Looking for something serious",
			Icon:        "💍",
			Category:    "profile",
			Rarity:      "common",
		},
		BadgeMatchmaker: {
			Name:        "Matchmaker",
			Description: "Made 50 or more matches",
			Icon:        "❤️",
			Category:    "social",
			Rarity:      "rare",
		},
		BadgePopular: {
			Name:        "Popular",
			Description: "50+ profile views in the last week",
			Icon:        "🔥",
			Category:    "social",
			Rarity:      "rare",
		},
		BadgeTopTier: {
			Name:        "Top Tier",
			Description: "Profile score of 1500 or higher",
			Icon:        "🏆",
			Category:    "social",
			Rarity:      "legendary",
		},
	}
}
