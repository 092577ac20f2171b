package bands

import (
	"context"
	"testing"
	"time"

	"talent-marketplace/internal/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time          { return c.now }
func (c *clock) advance(d time.Duration) { c.now = c.now.Add(d) }

func setup(subscribed ...uint) (*Service, *memoryStore, *clock, *invalidations) {
	store := newMemoryStore()
	subs := fakeSubs{}
	for _, id := range subscribed {
		subs[id] = true
	}
	inv := &invalidations{}
	clk := &clock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewService(store, subs, inv).WithClock(clk.Now)
	return svc, store, clk, inv
}

func actor(id uint) Actor { return Actor{UserID: id, TalentProfileID: id * 10} }

func TestCreateBand_RequiresBandsSubscription(t *testing.T) {
	svc, _, _, _ := setup()

	_, err := svc.CreateBand(context.Background(), actor(1), CreateBandInput{Name: "Band A"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeSubscriptionNeeded))
}

func TestCreateBand_CreatorBecomesAdmin(t *testing.T) {
	svc, store, _, _ := setup(1)

	band, err := svc.CreateBand(context.Background(), actor(1), CreateBandInput{Name: "  Band A  "})
	require.NoError(t, err)
	assert.Equal(t, "Band A", band.Name)

	m, err := store.GetMembership(context.Background(), band.ID, actor(1).TalentProfileID)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.True(t, m.IsAdmin())
}

func TestCreateBand_RequiresName(t *testing.T) {
	svc, _, _, _ := setup(1)
	_, err := svc.CreateBand(context.Background(), actor(1), CreateBandInput{Name: "   "})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestTalentInBandCannotCreateOrJoinAnother(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := setup(1, 2)

	bandA, err := svc.CreateBand(ctx, actor(1), CreateBandInput{Name: "Band A"})
	require.NoError(t, err)
	bandB, err := svc.CreateBand(ctx, actor(2), CreateBandInput{Name: "Band B"})
	require.NoError(t, err)

	_, err = svc.CreateBand(ctx, actor(1), CreateBandInput{Name: "Band C"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAlreadyInBand))
	assert.Contains(t, err.Error(), "Band A")

	inv, err := svc.CreateInvitation(ctx, actor(2), bandB.ID)
	require.NoError(t, err)
	_, err = svc.JoinWithCode(ctx, actor(1), inv.Code)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAlreadyInBand))
	assert.Contains(t, err.Error(), bandA.Name)
}

func TestJoinWithCode_NoSubscriptionNeeded(t *testing.T) {
	ctx := context.Background()
	svc, store, _, invalid := setup(1)

	band, err := svc.CreateBand(ctx, actor(1), CreateBandInput{Name: "Band A"})
	require.NoError(t, err)
	inv, err := svc.CreateInvitation(ctx, actor(1), band.ID)
	require.NoError(t, err)

	joined, err := svc.JoinWithCode(ctx, actor(2), inv.Code)
	require.NoError(t, err)
	assert.Equal(t, band.ID, joined.ID)

	members, admins, _ := store.CountMembers(ctx, band.ID)
	assert.Equal(t, 2, members)
	assert.Equal(t, 1, admins)
	assert.Contains(t, invalid.keys, band.ID)
}

func TestJoinWithCode_UsedTwice(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := setup(1)

	band, _ := svc.CreateBand(ctx, actor(1), CreateBandInput{Name: "Band A"})
	inv, err := svc.CreateInvitation(ctx, actor(1), band.ID)
	require.NoError(t, err)

	_, err = svc.JoinWithCode(ctx, actor(2), inv.Code)
	require.NoError(t, err)

	_, err = svc.JoinWithCode(ctx, actor(3), inv.Code)
	assert.ErrorIs(t, err, ErrInvitationUsed)
	assert.Contains(t, err.Error(), "already been used")
}

func TestJoinWithCode_Expired(t *testing.T) {
	ctx := context.Background()
	svc, _, clk, _ := setup(1)

	band, _ := svc.CreateBand(ctx, actor(1), CreateBandInput{Name: "Band A"})
	inv, err := svc.CreateInvitation(ctx, actor(1), band.ID)
	require.NoError(t, err)

	clk.advance(15*time.Minute + time.Second)
	_, err = svc.JoinWithCode(ctx, actor(2), inv.Code)
	assert.ErrorIs(t, err, ErrInvitationExpired)
	assert.Contains(t, err.Error(), "expired")
}

func TestJoinWithCode_UnknownCode(t *testing.T) {
	svc, _, _, _ := setup()
	_, err := svc.JoinWithCode(context.Background(), actor(2), "nope1234")
	assert.ErrorIs(t, err, apperrors.ErrInvitationNotFound)
}

func TestCreateInvitation_AdminsOnly(t *testing.T) {
	ctx := context.Background()
	svc, store, _, _ := setup(1)

	band, _ := svc.CreateBand(ctx, actor(1), CreateBandInput{Name: "Band A"})
	store.addMember(band.ID, actor(2).TalentProfileID, RoleMember)

	_, err := svc.CreateInvitation(ctx, actor(2), band.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotBandAdmin))
}

func bandWithMembers(t *testing.T, n int) (*Service, *Band) {
	t.Helper()
	svc, store, _, _ := setup(1)
	band, err := svc.CreateBand(context.Background(), actor(1), CreateBandInput{Name: "Band A"})
	require.NoError(t, err)
	for i := 2; i <= n; i++ {
		store.addMember(band.ID, actor(uint(i)).TalentProfileID, RoleMember)
	}
	return svc, band
}

func TestPromote_FourMembersCannotHaveSecondAdmin(t *testing.T) {
	svc, band := bandWithMembers(t, 4)

	_, err := svc.Promote(context.Background(), actor(1), band.ID, actor(2).TalentProfileID)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAdminLimitReached))
	assert.Contains(t, err.Error(), "4 member(s)")
}

func TestPromote_FiveMembersCanHaveSecondAdmin(t *testing.T) {
	ctx := context.Background()
	svc, band := bandWithMembers(t, 5)

	m, err := svc.Promote(ctx, actor(1), band.ID, actor(2).TalentProfileID)
	require.NoError(t, err)
	assert.True(t, m.IsAdmin())

	_, err = svc.Promote(ctx, actor(1), band.ID, actor(3).TalentProfileID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAdminLimitReached))
}

func TestPromote_NonMember(t *testing.T) {
	svc, band := bandWithMembers(t, 2)
	_, err := svc.Promote(context.Background(), actor(1), band.ID, 999)
	assert.ErrorIs(t, err, apperrors.ErrMembershipNotFound)
}

func TestDemote_LastAdminRefused(t *testing.T) {
	ctx := context.Background()
	svc, band := bandWithMembers(t, 5)

	_, err := svc.Demote(ctx, actor(1), band.ID, actor(1).TalentProfileID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))

	_, err = svc.Promote(ctx, actor(1), band.ID, actor(2).TalentProfileID)
	require.NoError(t, err)
	m, err := svc.Demote(ctx, actor(2), band.ID, actor(1).TalentProfileID)
	require.NoError(t, err)
	assert.False(t, m.IsAdmin())
}

func TestLeave(t *testing.T) {
	ctx := context.Background()
	svc, band := bandWithMembers(t, 3)

	assert.Error(t, svc.Leave(ctx, actor(1), band.ID), "last admin with members left")
	require.NoError(t, svc.Leave(ctx, actor(3), band.ID))
	assert.ErrorIs(t, svc.Leave(ctx, actor(3), band.ID), apperrors.ErrMembershipNotFound)

	require.NoError(t, svc.Leave(ctx, actor(2), band.ID))
	require.NoError(t, svc.Leave(ctx, actor(1), band.ID), "sole member may leave")
}
