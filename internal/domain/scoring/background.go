package scoring

import (
	"talent-marketplace/internal/domain/plans"
	"talent-marketplace/internal/domain/profiles"
)

func backgroundMedia(p *profiles.BackgroundProfile) int  { return len(p.Media) }
// The website already scores under completion.
func backgroundSocial(p *profiles.BackgroundProfile) int { return p.Social.NetworkCount() }

// BackgroundTable: tier 5/25, verification 25, completion 25, media 20,
// listings 15, social 10.
var BackgroundTable = Table[*profiles.BackgroundProfile]{
	{
		Name: CategoryAccountTier,
		Mode: FirstMatch,
		Rules: []Rule[*profiles.BackgroundProfile]{
			{Points: 25, Explain: "Paid account", Match: func(p *profiles.BackgroundProfile) bool { return p.Tier() == plans.TierPaid }},
			{Points: 5, Explain: "Free account", Match: always[*profiles.BackgroundProfile]},
		},
	},
	{
		Name:  CategoryVerification,
		Mode:  FirstMatch,
		Rules: verificationRules(25, func(p *profiles.BackgroundProfile) bool { return p.IsVerified }),
		Empty: "Profile not verified",
	},
	{
		Name: CategoryCompletion,
		Mode: SumAll,
		Rules: []Rule[*profiles.BackgroundProfile]{
			{Points: 5, Explain: "Company name set", Match: func(p *profiles.BackgroundProfile) bool { return hasText(p.CompanyName) }},
			{Points: 5, Explain: "Bio longer than 50 characters", Match: func(p *profiles.BackgroundProfile) bool { return longText(p.Bio) }},
			{Points: 5, Explain: "Profile picture", Match: func(p *profiles.BackgroundProfile) bool { return hasText(p.PictureURL) }},
			{Points: 5, Explain: "Country set", Match: func(p *profiles.BackgroundProfile) bool { return hasText(p.Country) }},
			{Points: 5, Explain: "Website set", Match: func(p *profiles.BackgroundProfile) bool { return hasText(p.Social.Website) }},
		},
		Empty: "Profile is empty",
	},
	{
		Name:  CategoryMedia,
		Mode:  FirstMatch,
		Rules: mediaRules(backgroundMedia),
		Empty: "No media uploaded",
	},
	{
		Name: CategoryListings,
		Mode: FirstMatch,
		Rules: []Rule[*profiles.BackgroundProfile]{
			{Points: 15, Explain: "6 or more listings", Match: func(p *profiles.BackgroundProfile) bool { return p.ListingCount >= 6 }},
			{Points: 10, Explain: "3-5 listings", Match: func(p *profiles.BackgroundProfile) bool { return p.ListingCount >= 3 }},
			{Points: 5, Explain: "1-2 listings", Match: func(p *profiles.BackgroundProfile) bool { return p.ListingCount >= 1 }},
		},
		Empty: "No listings",
	},
	{
		Name:  CategorySocial,
		Mode:  FirstMatch,
		Rules: socialRules(backgroundSocial),
		Empty: "No social links",
	},
}

func ScoreBackground(p *profiles.BackgroundProfile) Breakdown {
	if p == nil {
		p = &profiles.BackgroundProfile{}
	}
	return BackgroundTable.Score(p)
}

func BackgroundCompleted(p *profiles.BackgroundProfile) bool {
	return p != nil && BackgroundTable.Full(CategoryCompletion, p)
}
