package bands

import (
	"testing"
	"time"

	"talent-marketplace/internal/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxAdmins(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 4: 1, 5: 2, 24: 2, 25: 3, 300: 3}
	for members, want := range cases {
		assert.Equal(t, want, MaxAdmins(members), "%d members", members)
	}
}

func TestCheckCanPromote(t *testing.T) {
	err := CheckCanPromote(1, 4)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAdminLimitReached))
	assert.Contains(t, err.Error(), "4 member(s)")
	assert.Contains(t, err.Error(), "at most 1 admin(s)")

	assert.NoError(t, CheckCanPromote(1, 5))
	assert.Error(t, CheckCanPromote(2, 24))
	assert.NoError(t, CheckCanPromote(2, 25))
	assert.Error(t, CheckCanPromote(3, 100))
}

func TestCheckNotInBand_NamesExistingBand(t *testing.T) {
	assert.NoError(t, CheckNotInBand(nil))

	err := CheckNotInBand(&Band{ID: 3, Name: "Band A"})
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadyInBand, appErr.Code)
	assert.Contains(t, appErr.Message, `"Band A"`)
	assert.Equal(t, map[string]any{"band_id": uint(3), "band_name": "Band A"}, appErr.Details)
}

func TestNewInviteCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := NewInviteCode()
		require.NoError(t, err)
		assert.Len(t, code, InviteCodeLength)
		assert.Regexp(t, `^[A-Za-z0-9]{8}$`, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestCheckInvitation(t *testing.T) {
	created := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	inv, err := NewInvitation(1, 2, created)
	require.NoError(t, err)
	assert.Equal(t, created.Add(15*time.Minute), inv.ExpiresAt)

	assert.NoError(t, CheckInvitation(inv, created.Add(14*time.Minute)))
	assert.ErrorIs(t, CheckInvitation(inv, created.Add(15*time.Minute)), ErrInvitationExpired)
	assert.ErrorIs(t, CheckInvitation(inv, created.Add(16*time.Minute)), ErrInvitationExpired)

	used := created.Add(time.Minute)
	inv.UsedAt = &used
	assert.ErrorIs(t, CheckInvitation(inv, created.Add(2*time.Minute)), ErrInvitationUsed)
	assert.ErrorIs(t, CheckInvitation(inv, created.Add(time.Hour)), ErrInvitationUsed)

	assert.ErrorIs(t, CheckInvitation(nil, created), apperrors.ErrInvitationNotFound)
}
