package scoring

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"talent-marketplace/internal/domain/bands"
	"talent-marketplace/internal/domain/media"
	"talent-marketplace/internal/domain/plans"
	"talent-marketplace/internal/domain/profiles"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(n int) []media.Item { return make([]media.Item, n) }

func fullTalent() *profiles.TalentProfile {
	dob := time.Date(1995, 4, 2, 0, 0, 0, 0, time.UTC)
	return &profiles.TalentProfile{
		AccountTier:      plans.TierPlatinum,
		IsVerified:       true,
		Bio:              strings.Repeat("a", 51),
		PictureURL:       "https://cdn.example.com/p.jpg",
		Country:          "Spain",
		DateOfBirth:      &dob,
		VisualWorker:     &profiles.VisualWorker{},
		ExpressiveWorker: &profiles.ExpressiveWorker{},
		Social:           profiles.SocialLinks{Instagram: "i", TikTok: "t", YouTube: "y"},
		Media:            items(6),
	}
}

func TestScoreTalent_EmptyFreeProfileScoresFive(t *testing.T) {
	b := ScoreTalent(&profiles.TalentProfile{})

	assert.Equal(t, 5, b.Total)
	assert.Equal(t, 5, b.Categories[CategoryAccountTier])
	assert.Equal(t, 0, b.Categories[CategoryVerification])
	assert.Equal(t, 0, b.Categories[CategoryCompletion])
	assert.Equal(t, "Free account", b.Details[CategoryAccountTier])
	assert.Equal(t, "No media uploaded", b.Details[CategoryMedia])
}

func TestScoreTalent_NilProfile(t *testing.T) {
	assert.Equal(t, 5, ScoreTalent(nil).Total)
}

func TestScoreTalent_FullProfileIsCapped(t *testing.T) {
	b := ScoreTalent(fullTalent())

	assert.Equal(t, 25, b.Categories[CategoryAccountTier])
	assert.Equal(t, 25, b.Categories[CategoryVerification])
	assert.Equal(t, 25, b.Categories[CategoryCompletion])
	assert.Equal(t, 20, b.Categories[CategoryMedia])
	assert.Equal(t, 15, b.Categories[CategorySpecializations])
	assert.Equal(t, 10, b.Categories[CategorySocial])
	assert.Equal(t, MaxScore, b.Total)
}

func TestScoreTalent_Tiers(t *testing.T) {
	cases := map[string]int{
		plans.TierFree:     5,
		plans.TierPremium:  15,
		plans.TierPlatinum: 25,
		"":                 5,
	}
	for tier, want := range cases {
		b := ScoreTalent(&profiles.TalentProfile{AccountTier: tier})
		assert.Equal(t, want, b.Categories[CategoryAccountTier], "tier %q", tier)
	}
}

func TestScoreTalent_MediaThresholds(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 5}, {2, 10}, {3, 10}, {4, 15}, {5, 15}, {6, 20}, {12, 20},
	}
	for _, tc := range cases {
		b := ScoreTalent(&profiles.TalentProfile{Media: items(tc.n)})
		assert.Equal(t, tc.want, b.Categories[CategoryMedia], "%d items", tc.n)
	}
}

func TestScoreTalent_SocialThresholds(t *testing.T) {
	links := []profiles.SocialLinks{
		{},
		{Instagram: "i"},
		{Instagram: "i", X: "x"},
		{Instagram: "i", X: "x", Website: "w"},
		{Instagram: "i", X: "x", Website: "w", Facebook: "f", TikTok: "t", YouTube: "y"},
	}
	want := []int{0, 2, 5, 10, 10}
	for i, l := range links {
		b := ScoreTalent(&profiles.TalentProfile{Social: l})
		assert.Equal(t, want[i], b.Categories[CategorySocial], "case %d", i)
	}
}

func TestScoreTalent_BlankSocialLinksDoNotCount(t *testing.T) {
	b := ScoreTalent(&profiles.TalentProfile{Social: profiles.SocialLinks{Instagram: "  "}})
	assert.Equal(t, 0, b.Categories[CategorySocial])
}

func TestScoreTalent_SpecializationBonus(t *testing.T) {
	one := ScoreTalent(&profiles.TalentProfile{HybridWorker: &profiles.HybridWorker{}})
	assert.Equal(t, 10, one.Categories[CategorySpecializations])
	assert.Equal(t, 5, one.Categories[CategoryCompletion])

	two := ScoreTalent(&profiles.TalentProfile{
		HybridWorker: &profiles.HybridWorker{},
		VisualWorker: &profiles.VisualWorker{},
	})
	assert.Equal(t, 15, two.Categories[CategorySpecializations])
	assert.Contains(t, two.Details[CategorySpecializations], "bonus")
}

func TestScoreTalent_BioMustExceedFiftyCharacters(t *testing.T) {
	exact := ScoreTalent(&profiles.TalentProfile{Bio: strings.Repeat("b", 50)})
	assert.Equal(t, 0, exact.Categories[CategoryCompletion])

	longer := ScoreTalent(&profiles.TalentProfile{Bio: strings.Repeat("b", 51)})
	assert.Equal(t, 5, longer.Categories[CategoryCompletion])
}

func TestScoreTalent_TotalAlwaysInRange(t *testing.T) {
	tiers := []string{"", plans.TierFree, plans.TierPremium, plans.TierPlatinum}
	for _, tier := range tiers {
		for _, verified := range []bool{false, true} {
			for mediaCount := 0; mediaCount <= 7; mediaCount++ {
				for mask := 0; mask < 8; mask++ {
					p := fullTalent()
					p.AccountTier = tier
					p.IsVerified = verified
					p.Media = items(mediaCount)
					if mask&1 == 0 {
						p.VisualWorker = nil
					}
					if mask&2 == 0 {
						p.ExpressiveWorker = nil
					}
					if mask&4 == 0 {
						p.Bio = ""
						p.Social = profiles.SocialLinks{}
					}
					total := ScoreTalent(p).Total
					assert.GreaterOrEqual(t, total, 0)
					assert.LessOrEqual(t, total, MaxScore)
				}
			}
		}
	}
}

func TestTalentCompleted(t *testing.T) {
	assert.True(t, TalentCompleted(fullTalent()))

	p := fullTalent()
	p.DateOfBirth = nil
	assert.False(t, TalentCompleted(p))
	assert.False(t, TalentCompleted(nil))
}

func TestScoreBackground(t *testing.T) {
	empty := ScoreBackground(&profiles.BackgroundProfile{})
	assert.Equal(t, 5, empty.Total)

	paid := ScoreBackground(&profiles.BackgroundProfile{AccountTier: plans.TierPaid})
	assert.Equal(t, 25, paid.Categories[CategoryAccountTier])

	withSite := &profiles.BackgroundProfile{
		CompanyName: "Acme Rentals",
		Bio:         strings.Repeat("c", 60),
		PictureURL:  "p",
		Country:     "Lebanon",
		Social:      profiles.SocialLinks{Website: "https://acme.example"},
	}
	assert.Equal(t, 25, ScoreBackground(withSite).Categories[CategoryCompletion])
	assert.True(t, BackgroundCompleted(withSite))
}

func TestScoreBackground_WebsiteScoresOnlyUnderCompletion(t *testing.T) {
	site := ScoreBackground(&profiles.BackgroundProfile{Social: profiles.SocialLinks{Website: "https://acme.example"}})
	assert.Equal(t, 5, site.Categories[CategoryCompletion])
	assert.Equal(t, 0, site.Categories[CategorySocial])

	both := ScoreBackground(&profiles.BackgroundProfile{Social: profiles.SocialLinks{Website: "w", Instagram: "i"}})
	assert.Equal(t, 2, both.Categories[CategorySocial])
}

func TestScoreBackground_ListingThresholds(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 5}, {2, 5}, {3, 10}, {5, 10}, {6, 15}, {40, 15},
	}
	for _, tc := range cases {
		b := ScoreBackground(&profiles.BackgroundProfile{ListingCount: tc.n})
		assert.Equal(t, tc.want, b.Categories[CategoryListings], "%d listings", tc.n)
	}
}

func TestScoreBand(t *testing.T) {
	assert.Equal(t, 0, ScoreBand(nil).Total)

	members := func(n int) []bands.Membership { return make([]bands.Membership, n) }
	cases := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 5}, {2, 10}, {3, 10}, {4, 15}, {5, 15}, {6, 20},
	}
	for _, tc := range cases {
		b := ScoreBand(&bands.Band{Members: members(tc.n)})
		assert.Equal(t, tc.want, b.Categories[CategoryMembers], "%d members", tc.n)
	}

	verified := ScoreBand(&bands.Band{IsVerified: true, Name: "The Cedars"})
	assert.Equal(t, 20, verified.Categories[CategoryVerification])
	assert.Equal(t, 5, verified.Categories[CategoryCompletion])
	assert.Equal(t, 25, verified.Total)
	assert.False(t, BandCompleted(&bands.Band{Name: "x"}))
}

func TestBreakdown_JSONIsFlat(t *testing.T) {
	raw, err := json.Marshal(ScoreTalent(&profiles.TalentProfile{}))
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.EqualValues(t, 5, flat["total"])
	assert.EqualValues(t, 5, flat[CategoryAccountTier])
	assert.Contains(t, flat, "details")

	var back Breakdown
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, 5, back.Total)
	assert.Equal(t, 5, back.Categories[CategoryAccountTier])
	assert.Equal(t, "Free account", back.Details[CategoryAccountTier])
}
