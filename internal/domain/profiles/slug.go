package profiles

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe base slug from a display name.
// Example: "Lina Haddad" -> "lina-haddad"
func MakeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "talent"
	}
	return base
}

// EnsureTalentSlug gives the profile a public slug if it has none yet.
// Must be called after the profile has an ID.
func EnsureTalentSlug(db *gorm.DB, p *TalentProfile) (string, error) {
	if p == nil {
		return "", fmt.Errorf("profile is nil")
	}
	if p.Slug != nil && strings.TrimSpace(*p.Slug) != "" {
		return strings.TrimSpace(*p.Slug), nil
	}
	if p.ID == 0 {
		return "", fmt.Errorf("profile ID missing (call EnsureTalentSlug after Create)")
	}

	slug := fmt.Sprintf("%s-%d", MakeSlug(p.DisplayName), p.ID)
	p.Slug = &slug

	if err := db.Model(&TalentProfile{}).
		Where("id = ?", p.ID).
		Update("slug", slug).Error; err != nil {
		return "", err
	}
	return slug, nil
}

// PublicURL builds the public profile URL from a slug.
func PublicURL(appURL, slug string) string {
	return strings.TrimRight(appURL, "/") + "/talent/" + slug
}
