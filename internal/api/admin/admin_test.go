package admin

import (
	"net/http/httptest"
	"testing"

	"talent-marketplace/internal/domain/billing"
	"talent-marketplace/internal/domain/plans"
	"talent-marketplace/internal/domain/profiles"
	"talent-marketplace/internal/domain/scoring"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchFilter(t *testing.T) {
	f, err := ParseSearchFilter(map[string]string{"q": "  Ana ", "verified": "true", "tier": "Premium"})
	require.NoError(t, err)
	assert.Equal(t, scoring.KindTalent, f.Type)
	assert.Equal(t, "Ana", f.Query)
	assert.Equal(t, "premium", f.Tier)
	require.NotNil(t, f.Verified)
	assert.True(t, *f.Verified)

	f, err = ParseSearchFilter(map[string]string{"type": "band"})
	require.NoError(t, err)
	assert.Nil(t, f.Verified)

	_, err = ParseSearchFilter(map[string]string{"type": "agency"})
	assert.Error(t, err)
	_, err = ParseSearchFilter(map[string]string{"type": "band", "tier": "paid"})
	assert.Error(t, err)
	_, err = ParseSearchFilter(map[string]string{"verified": "maybe"})
	assert.Error(t, err)
}

func TestSearchSpecsCoverEveryType(t *testing.T) {
	for _, kind := range []string{scoring.KindTalent, scoring.KindBackground, scoring.KindBand} {
		target, ok := searchTargets[kind]
		require.True(t, ok, kind)
		assert.NotEmpty(t, target.columns)
	}
	assert.False(t, searchTargets[scoring.KindBand].joinUsers)
}

func TestCountMap(t *testing.T) {
	m := countMap([]countRow{{Key: "talent", Count: 4}, {Key: "background", Count: 2}})
	assert.Equal(t, map[string]int{"talent": 4, "background": 2}, m)
	assert.Empty(t, countMap(nil))
}

func TestSubscriptionRows(t *testing.T) {
	plan := &plans.Plan{Name: "Premium"}
	rows := subscriptionRows([]billing.Subscription{
		{Family: plans.FamilyTalent, Tier: plans.TierPremium, Status: billing.StatusActive, IsActive: true, Plan: plan},
		{Family: plans.FamilyBands, Tier: plans.TierPaid, Status: billing.StatusPastDue, IsActive: true},
	})
	require.Len(t, rows, 2)
	assert.True(t, rows[0].IsActive)
	require.NotNil(t, rows[0].PlanName)
	assert.Equal(t, "Premium", *rows[0].PlanName)
	assert.False(t, rows[1].IsActive)
	assert.Nil(t, rows[1].PlanName)
}

func targetContext(typ, id string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "type", Value: typ}, {Key: "id", Value: id}}
	return c
}

func TestProfileTarget(t *testing.T) {
	kind, id, model, err := profileTarget(targetContext("background", "12"))
	require.NoError(t, err)
	assert.Equal(t, scoring.KindBackground, kind)
	assert.Equal(t, uint(12), id)
	assert.IsType(t, &profiles.BackgroundProfile{}, model)

	_, _, _, err = profileTarget(targetContext("agency", "1"))
	assert.Error(t, err)
	_, _, _, err = profileTarget(targetContext("talent", "zero"))
	assert.Error(t, err)
}
