package bands

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"talent-marketplace/internal/apperrors"
)

const (
	InvitationTTL    = 15 * time.Minute
	InviteCodeLength = 8

	inviteAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// MaxAdmins is the admin ceiling for a band of the given size.
func MaxAdmins(memberCount int) int {
	switch {
	case memberCount >= 25:
		return 3
	case memberCount >= 5:
		return 2
	default:
		return 1
	}
}

// CheckNotInBand fails when the talent already belongs to a band.
func CheckNotInBand(existing *Band) error {
	if existing == nil {
		return nil
	}
	return apperrors.New(apperrors.CodeAlreadyInBand,
		fmt.Sprintf("You are already a member of the band %q. A talent can only belong to one band at a time.", existing.Name),
		http.StatusBadRequest,
	).WithDetails(map[string]any{"band_id": existing.ID, "band_name": existing.Name})
}

// CheckCanPromote fails when one more admin would exceed the ceiling.
func CheckCanPromote(adminCount, memberCount int) error {
	ceiling := MaxAdmins(memberCount)
	if adminCount+1 <= ceiling {
		return nil
	}
	return apperrors.New(apperrors.CodeAdminLimitReached,
		fmt.Sprintf("A band with %d member(s) can have at most %d admin(s).", memberCount, ceiling),
		http.StatusBadRequest,
	).WithDetails(map[string]any{"max_admins": ceiling, "member_count": memberCount, "admin_count": adminCount})
}

// NewInviteCode returns a random alphanumeric code of InviteCodeLength characters.
func NewInviteCode() (string, error) {
	alphabetLen := big.NewInt(int64(len(inviteAlphabet)))
	b := make([]byte, InviteCodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		b[i] = inviteAlphabet[n.Int64()]
	}
	return string(b), nil
}

// NewInvitation builds an unsaved invitation expiring InvitationTTL after now.
func NewInvitation(bandID, createdBy uint, now time.Time) (*Invitation, error) {
	code, err := NewInviteCode()
	if err != nil {
		return nil, err
	}
	return &Invitation{
		BandID:             bandID,
		Code:               code,
		CreatedByProfileID: createdBy,
		CreatedAt:          now,
		ExpiresAt:          now.Add(InvitationTTL),
	}, nil
}

var (
	ErrInvitationUsed = apperrors.New(apperrors.CodeInvitationUsed,
		"This invitation code has already been used.", http.StatusBadRequest)
	ErrInvitationExpired = apperrors.New(apperrors.CodeInvitationExpired,
		"This invitation code has expired. Ask a band admin for a new one.", http.StatusBadRequest)
)

// CheckInvitation validates that a code can still be redeemed at now.
// A used code reports "already used" even when it has also expired.
func CheckInvitation(inv *Invitation, now time.Time) error {
	if inv == nil {
		return apperrors.ErrInvitationNotFound
	}
	if inv.UsedAt != nil {
		return ErrInvitationUsed
	}
	if !now.Before(inv.ExpiresAt) {
		return ErrInvitationExpired
	}
	return nil
}
