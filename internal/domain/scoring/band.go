package scoring

import "talent-marketplace/internal/domain/bands"

func bandMedia(b *bands.Band) int   { return len(b.Media) }
func bandSocial(b *bands.Band) int  { return b.Social.Count() }
func bandMembers(b *bands.Band) int { return len(b.Members) }

// BandTable: verification 20, completion 25, members 20, media 20, social 10.
var BandTable = Table[*bands.Band]{
	{
		Name:  CategoryVerification,
		Mode:  FirstMatch,
		Rules: verificationRules(20, func(b *bands.Band) bool { return b.IsVerified }),
		Empty: "Band not verified",
	},
	{
		Name: CategoryCompletion,
		Mode: SumAll,
		Rules: []Rule[*bands.Band]{
			{Points: 5, Explain: "Band name set", Match: func(b *bands.Band) bool { return hasText(b.Name) }},
			{Points: 5, Explain: "Description longer than 50 characters", Match: func(b *bands.Band) bool { return longText(b.Description) }},
			{Points: 5, Explain: "Band picture", Match: func(b *bands.Band) bool { return hasText(b.PictureURL) }},
			{Points: 5, Explain: "Genre set", Match: func(b *bands.Band) bool { return hasText(b.Genre) }},
			{Points: 5, Explain: "Country set", Match: func(b *bands.Band) bool { return hasText(b.Country) }},
		},
		Empty: "Band profile is empty",
	},
	{
		Name: CategoryMembers,
		Mode: FirstMatch,
		Rules: []Rule[*bands.Band]{
			{Points: 20, Explain: "6 or more members", Match: func(b *bands.Band) bool { return bandMembers(b) >= 6 }},
			{Points: 15, Explain: "4-5 members", Match: func(b *bands.Band) bool { return bandMembers(b) >= 4 }},
			{Points: 10, Explain: "2-3 members", Match: func(b *bands.Band) bool { return bandMembers(b) >= 2 }},
			{Points: 5, Explain: "1 member", Match: func(b *bands.Band) bool { return bandMembers(b) == 1 }},
		},
		Empty: "No members",
	},
	{
		Name:  CategoryMedia,
		Mode:  FirstMatch,
		Rules: mediaRules(bandMedia),
		Empty: "No media uploaded",
	},
	{
		Name:  CategorySocial,
		Mode:  FirstMatch,
		Rules: socialRules(bandSocial),
		Empty: "No social links",
	},
}

func ScoreBand(b *bands.Band) Breakdown {
	if b == nil {
		b = &bands.Band{}
	}
	return BandTable.Score(b)
}

func BandCompleted(b *bands.Band) bool {
	return b != nil && BandTable.Full(CategoryCompletion, b)
}
