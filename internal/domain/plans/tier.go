package plans

import "strings"

// Plan families. A user holds at most one live subscription per family.
const (
	FamilyTalent     = "talent"
	FamilyBackground = "background"
	FamilyBands      = "bands"
)

// Account tiers (single source of truth)
const (
	TierFree     = "free"
	TierPremium  = "premium"
	TierPlatinum = "platinum"
	TierPaid     = "paid"
)

func IsValidFamily(f string) bool {
	switch f {
	case FamilyTalent, FamilyBackground, FamilyBands:
		return true
	}
	return false
}

// TiersFor lists the tiers an account of the given family can hold, free first.
func TiersFor(family string) []string {
	switch family {
	case FamilyTalent:
		return []string{TierFree, TierPremium, TierPlatinum}
	case FamilyBackground, FamilyBands:
		return []string{TierFree, TierPaid}
	}
	return nil
}

func IsValidTier(family, tier string) bool {
	for _, t := range TiersFor(family) {
		if t == tier {
			return true
		}
	}
	return false
}

// PlanTier returns the effective tier for a plan.
// Priority:
// 1. Explicit Tier stored in DB (when valid for the plan family)
// 2. Fallback inference by price (legacy safety net)
func PlanTier(p *Plan) string {
	if p == nil {
		return TierFree
	}

	tier := strings.ToLower(strings.TrimSpace(p.Tier))
	if tier != TierFree && IsValidTier(p.Family, tier) {
		return tier
	}

	return inferTierFromPrice(p.Family, p.Price)
}

// inferTierFromPrice exists ONLY as a backward-compatibility fallback for
// prices synced before tier metadata was set in Stripe.
func inferTierFromPrice(family string, price float64) string {
	if family != FamilyTalent {
		return TierPaid
	}
	switch {
	case price >= 25:
		return TierPlatinum
	default:
		return TierPremium
	}
}
