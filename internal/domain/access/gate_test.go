package access

import (
	"context"
	"errors"
	"testing"

	"talent-marketplace/internal/domain/billing"
	"talent-marketplace/internal/domain/plans"
	"talent-marketplace/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubs struct {
	rows map[string]*billing.Subscription
	err  error
}

func (f fakeSubs) FindSubscription(_ context.Context, _ uint, family string) (*billing.Subscription, error) {
	return f.rows[family], f.err
}

func background() users.User { return users.User{ID: 1, UserType: users.TypeBackground} }

func TestCheck_BackgroundWithoutSubscriptionIsGated(t *testing.T) {
	res := Check(background(), nil)

	assert.False(t, res.HasSubscription)
	assert.False(t, res.CanAccessFeatures)
	assert.Equal(t, []Action{
		ActionShareItems,
		ActionRentOrSell,
		ActionUploadMedia,
		ActionCreateListings,
		ActionRespondToJobs,
	}, res.RestrictedActions)
	assert.Equal(t, msgSubscribeFirst, res.Message)
}

func TestCheck_ActiveRowFlipsGate(t *testing.T) {
	sub := &billing.Subscription{Status: billing.StatusActive, IsActive: true}
	res := Check(background(), sub)

	assert.True(t, res.HasSubscription)
	assert.True(t, res.CanAccessFeatures)
	assert.Empty(t, res.RestrictedActions)
}

func TestCheck_InactiveRows(t *testing.T) {
	rows := []*billing.Subscription{
		{Status: billing.StatusActive, IsActive: false},
		{Status: billing.StatusCanceled, IsActive: true},
		{Status: billing.StatusPastDue, IsActive: true},
		{Status: billing.StatusTrialing, IsActive: true},
	}
	for _, sub := range rows {
		res := Check(background(), sub)
		assert.False(t, res.CanAccessFeatures, "status=%s active=%v", sub.Status, sub.IsActive)
		assert.Equal(t, msgInactive, res.Message)
		assert.Len(t, res.RestrictedActions, 5)
	}
}

func TestCheck_TalentAlwaysPasses(t *testing.T) {
	res := Check(users.User{UserType: users.TypeTalent}, nil)
	assert.True(t, res.CanAccessFeatures)
	assert.False(t, res.HasSubscription)
	assert.Empty(t, res.RestrictedActions)
}

func TestRestrictedActions_ReturnsCopy(t *testing.T) {
	a := RestrictedActions()
	a[0] = "changed"
	assert.Equal(t, ActionShareItems, RestrictedActions()[0])
}

func TestGate_LooksUpBackgroundFamily(t *testing.T) {
	g := NewGate(fakeSubs{rows: map[string]*billing.Subscription{
		plans.FamilyBackground: {Status: billing.StatusActive, IsActive: true},
	}})

	res, err := g.Check(context.Background(), background())
	require.NoError(t, err)
	assert.True(t, res.CanAccessFeatures)
}

func TestGate_MissingRowIsNotAnError(t *testing.T) {
	g := NewGate(fakeSubs{})

	ok, res, err := g.Allows(context.Background(), background(), ActionUploadMedia)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, res.HasSubscription)
}

func TestGate_PropagatesLookupErrors(t *testing.T) {
	g := NewGate(fakeSubs{err: errors.New("db down")})

	_, err := g.Check(context.Background(), background())
	assert.Error(t, err)
}

func TestGate_UnrestrictedActionAllowed(t *testing.T) {
	g := NewGate(fakeSubs{})
	ok, _, err := g.Allows(context.Background(), background(), Action("view_jobs"))
	require.NoError(t, err)
	assert.True(t, ok)
}
