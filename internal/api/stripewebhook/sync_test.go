package stripewebhooks

import (
	"testing"
	"time"

	"talent-marketplace/internal/domain/billing"
	"talent-marketplace/internal/domain/plans"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75"
)

func stripeSub(status stripe.SubscriptionStatus, priceID string) *stripe.Subscription {
	return &stripe.Subscription{
		ID:                 "sub_123",
		Status:             status,
		CurrentPeriodStart: 1700000000,
		CurrentPeriodEnd:   1702592000,
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{{ID: "si_1", Price: &stripe.Price{ID: priceID}}},
		},
	}
}

func TestApplyStripe_ActivatesRow(t *testing.T) {
	plan := &plans.Plan{ID: 7, Family: plans.FamilyTalent, Tier: plans.TierPlatinum, Price: 29}
	row := &billing.Subscription{UserID: 1}

	applyStripe(row, stripeSub(stripe.SubscriptionStatusActive, "price_platinum"), plan)

	assert.Equal(t, billing.StatusActive, row.Status)
	assert.True(t, row.IsActive)
	assert.True(t, row.Live())
	assert.Equal(t, plans.TierPlatinum, row.Tier)
	assert.Equal(t, plans.FamilyTalent, row.Family)
	require.NotNil(t, row.StripeSubscriptionID)
	assert.Equal(t, "sub_123", *row.StripeSubscriptionID)
	require.NotNil(t, row.CurrentPeriodEnd)
	assert.Equal(t, time.Unix(1702592000, 0), *row.CurrentPeriodEnd)
}

func TestApplyStripe_ClearsPendingWhenDowngradeLands(t *testing.T) {
	premium := &plans.Plan{ID: 3, Family: plans.FamilyTalent, Tier: plans.TierPremium}
	pending := uint(3)
	schedule := "sub_sched_1"
	row := &billing.Subscription{UserID: 1, Family: plans.FamilyTalent, PendingPlanID: &pending, StripeScheduleID: &schedule}

	applyStripe(row, stripeSub(stripe.SubscriptionStatusActive, "price_premium"), premium)

	assert.Nil(t, row.PendingPlanID)
	assert.Nil(t, row.StripeScheduleID)
	assert.Equal(t, plans.TierPremium, row.Tier)
}

func TestApplyStripe_KeepsPendingForOtherPlan(t *testing.T) {
	platinum := &plans.Plan{ID: 7, Family: plans.FamilyTalent, Tier: plans.TierPlatinum}
	pending := uint(3)
	row := &billing.Subscription{UserID: 1, Family: plans.FamilyTalent, PendingPlanID: &pending}

	applyStripe(row, stripeSub(stripe.SubscriptionStatusActive, "price_platinum"), platinum)

	require.NotNil(t, row.PendingPlanID)
	assert.Equal(t, uint(3), *row.PendingPlanID)
}

func TestApplyStripe_PastDueIsNotLive(t *testing.T) {
	plan := &plans.Plan{ID: 2, Family: plans.FamilyBackground, Tier: plans.TierPaid}
	row := &billing.Subscription{UserID: 1, ManuallyGranted: true}

	applyStripe(row, stripeSub(stripe.SubscriptionStatusPastDue, "price_bg"), plan)

	assert.Equal(t, billing.StatusPastDue, row.Status)
	assert.False(t, row.IsActive)
	assert.False(t, row.Live())
	assert.False(t, row.ManuallyGranted)
}

func TestActivePriceID(t *testing.T) {
	assert.Equal(t, "price_x", activePriceID(stripeSub(stripe.SubscriptionStatusActive, "price_x")))
	assert.Empty(t, activePriceID(&stripe.Subscription{}))
	assert.Empty(t, activePriceID(nil))
}

func TestParseUserID(t *testing.T) {
	id, err := parseUserID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	_, err = parseUserID("")
	assert.Error(t, err)
	_, err = parseUserID("abc")
	assert.Error(t, err)

	assert.Equal(t, uint(0), userIDFromMetadata(nil))
	assert.Equal(t, uint(9), userIDFromMetadata(map[string]string{"user_id": "9"}))
}
