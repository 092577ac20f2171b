package scoring

import (
	"talent-marketplace/internal/domain/plans"
	"talent-marketplace/internal/domain/profiles"
)

func talentMedia(p *profiles.TalentProfile) int  { return len(p.Media) }
func talentSocial(p *profiles.TalentProfile) int { return p.Social.Count() }
func talentSpecs(p *profiles.TalentProfile) int  { return len(p.Specializations()) }

// TalentTable: tier 5/15/25, verification 25, completion 25, media 20,
// specializations 15, social 10.
var TalentTable = Table[*profiles.TalentProfile]{
	{
		Name: CategoryAccountTier,
		Mode: FirstMatch,
		Rules: []Rule[*profiles.TalentProfile]{
			{Points: 25, Explain: "Platinum account", Match: func(p *profiles.TalentProfile) bool { return p.Tier() == plans.TierPlatinum }},
			{Points: 15, Explain: "Premium account", Match: func(p *profiles.TalentProfile) bool { return p.Tier() == plans.TierPremium }},
			{Points: 5, Explain: "Free account", Match: always[*profiles.TalentProfile]},
		},
	},
	{
		Name:  CategoryVerification,
		Mode:  FirstMatch,
		Rules: verificationRules(25, func(p *profiles.TalentProfile) bool { return p.IsVerified }),
		Empty: "Profile not verified",
	},
	{
		Name: CategoryCompletion,
		Mode: SumAll,
		Rules: []Rule[*profiles.TalentProfile]{
			{Points: 5, Explain: "Bio longer than 50 characters", Match: func(p *profiles.TalentProfile) bool { return longText(p.Bio) }},
			{Points: 5, Explain: "Profile picture", Match: func(p *profiles.TalentProfile) bool { return hasText(p.PictureURL) }},
			{Points: 5, Explain: "Country set", Match: func(p *profiles.TalentProfile) bool { return hasText(p.Country) }},
			{Points: 5, Explain: "Date of birth set", Match: func(p *profiles.TalentProfile) bool { return p.DateOfBirth != nil }},
			{Points: 5, Explain: "Has a specialization", Match: func(p *profiles.TalentProfile) bool { return talentSpecs(p) > 0 }},
		},
		Empty: "Profile is empty",
	},
	{
		Name:  CategoryMedia,
		Mode:  FirstMatch,
		Rules: mediaRules(talentMedia),
		Empty: "No media uploaded",
	},
	{
		Name: CategorySpecializations,
		Mode: SumAll,
		Rules: []Rule[*profiles.TalentProfile]{
			{Points: 10, Explain: "Has a specialization", Match: func(p *profiles.TalentProfile) bool { return talentSpecs(p) >= 1 }},
			{Points: 5, Explain: "Multiple specializations bonus", Match: func(p *profiles.TalentProfile) bool { return talentSpecs(p) >= 2 }},
		},
		Empty: "No specializations",
	},
	{
		Name:  CategorySocial,
		Mode:  FirstMatch,
		Rules: socialRules(talentSocial),
		Empty: "No social links",
	},
}

func ScoreTalent(p *profiles.TalentProfile) Breakdown {
	if p == nil {
		p = &profiles.TalentProfile{}
	}
	return TalentTable.Score(p)
}

// TalentCompleted reports whether every completion check passes.
func TalentCompleted(p *profiles.TalentProfile) bool {
	return p != nil && TalentTable.Full(CategoryCompletion, p)
}
