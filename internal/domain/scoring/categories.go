package scoring

import (
	"strings"
	"unicode/utf8"
)

const (
	CategoryAccountTier     = "account_tier"
	CategoryVerification    = "verification"
	CategoryCompletion      = "profile_completion"
	CategoryMedia           = "media_content"
	CategorySpecializations = "specializations"
	CategorySocial          = "social_media"
	CategoryListings        = "listings"
	CategoryMembers         = "members"
)

// minBioLength is the bio length (in characters) that earns completion points.
const minBioLength = 50

func hasText(s string) bool { return strings.TrimSpace(s) != "" }

func longText(s string) bool { return utf8.RuneCountInString(strings.TrimSpace(s)) > minBioLength }

// mediaRules uses the shared thresholds: 6+, 4-5, 2-3, 1.
func mediaRules[T any](count func(T) int) []Rule[T] {
	return []Rule[T]{
		{Points: 20, Explain: "6 or more media items", Match: func(s T) bool { return count(s) >= 6 }},
		{Points: 15, Explain: "4-5 media items", Match: func(s T) bool { return count(s) >= 4 }},
		{Points: 10, Explain: "2-3 media items", Match: func(s T) bool { return count(s) >= 2 }},
		{Points: 5, Explain: "1 media item", Match: func(s T) bool { return count(s) == 1 }},
	}
}

func socialRules[T any](count func(T) int) []Rule[T] {
	return []Rule[T]{
		{Points: 10, Explain: "3 or more social links", Match: func(s T) bool { return count(s) >= 3 }},
		{Points: 5, Explain: "2 social links", Match: func(s T) bool { return count(s) == 2 }},
		{Points: 2, Explain: "1 social link", Match: func(s T) bool { return count(s) == 1 }},
	}
}

func verificationRules[T any](points int, verified func(T) bool) []Rule[T] {
	return []Rule[T]{
		{Points: points, Explain: "Verified profile", Match: verified},
	}
}
