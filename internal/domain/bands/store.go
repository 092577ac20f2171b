package bands

import "context"

// Store persists bands, memberships and invitations. Lookups return nil
// (not an error) when the row does not exist.
type Store interface {
	GetBand(ctx context.Context, id uint) (*Band, error)
	MembershipOf(ctx context.Context, talentProfileID uint) (*Membership, *Band, error)
	GetMembership(ctx context.Context, bandID, talentProfileID uint) (*Membership, error)
	CountMembers(ctx context.Context, bandID uint) (members int, admins int, err error)

	// CreateBand inserts the band and its creator membership atomically.
	CreateBand(ctx context.Context, band *Band, creator *Membership) error
	UpdateRole(ctx context.Context, membershipID uint, role string) error
	RemoveMember(ctx context.Context, membershipID uint) error

	CreateInvitation(ctx context.Context, inv *Invitation) error
	FindInvitation(ctx context.Context, code string) (*Invitation, error)
	// RedeemInvitation marks the invitation used and inserts the membership in
	// one transaction. It returns ErrInvitationUsed when another request
	// redeemed the code first.
	RedeemInvitation(ctx context.Context, inv *Invitation, m *Membership) error
}

// SubscriptionChecker answers whether a user holds a live subscription of a plan family.
type SubscriptionChecker interface {
	HasLiveSubscription(ctx context.Context, userID uint, family string) (bool, error)
}

// ScoreInvalidator drops cached profile scores after membership changes.
type ScoreInvalidator interface {
	Invalidate(ctx context.Context, kind string, id uint)
}
