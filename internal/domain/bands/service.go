package bands

import (
	"context"
	"net/http"
	"strings"
	"time"

	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/media"
	"talent-marketplace/internal/domain/plans"
	"talent-marketplace/internal/domain/profiles"
	"talent-marketplace/internal/logger"

	"go.uber.org/zap"
)

// Actor is the talent acting on a band.
type Actor struct {
	UserID          uint
	TalentProfileID uint
}

type CreateBandInput struct {
	Name        string
	Description string
	PictureURL  string
	Genre       string
	Country     string
	Social      profiles.SocialLinks
}

type Service struct {
	store  Store
	subs   SubscriptionChecker
	scores ScoreInvalidator
	now    func() time.Time
}

func NewService(store Store, subs SubscriptionChecker, scores ScoreInvalidator) *Service {
	return &Service{store: store, subs: subs, scores: scores, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

var (
	errBandsSubscriptionRequired = apperrors.New(apperrors.CodeSubscriptionNeeded,
		"An active bands subscription is required to create a band.", http.StatusForbidden)
	errNotBandAdmin = apperrors.New(apperrors.CodeNotBandAdmin,
		"Only band admins can do this.", http.StatusForbidden)
	errLastAdmin = apperrors.Validation(
		"A band needs at least one admin. Promote another member first.")
)

// CreateBand creates a band with the actor as its first admin. The creator
// needs a live bands subscription; joiners never do.
func (s *Service) CreateBand(ctx context.Context, actor Actor, in CreateBandInput) (*Band, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.Validation("Band name is required.")
	}

	if _, existing, err := s.store.MembershipOf(ctx, actor.TalentProfileID); err != nil {
		return nil, err
	} else if err := CheckNotInBand(existing); err != nil {
		return nil, err
	}

	ok, err := s.subs.HasLiveSubscription(ctx, actor.UserID, plans.FamilyBands)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errBandsSubscriptionRequired
	}

	now := s.now()
	band := &Band{
		Name:             name,
		Description:      strings.TrimSpace(in.Description),
		PictureURL:       in.PictureURL,
		Genre:            in.Genre,
		Country:          in.Country,
		CreatorProfileID: actor.TalentProfileID,
		Social:           in.Social,
	}
	creator := &Membership{
		TalentProfileID: actor.TalentProfileID,
		Role:            RoleAdmin,
		JoinedAt:        now,
	}
	if err := s.store.CreateBand(ctx, band, creator); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("band created",
		zap.Uint("band_id", band.ID),
		zap.Uint("talent_profile_id", actor.TalentProfileID))
	return band, nil
}

// CreateInvitation issues a single-use code for the band. Admins only.
func (s *Service) CreateInvitation(ctx context.Context, actor Actor, bandID uint) (*Invitation, error) {
	if _, err := s.requireAdmin(ctx, actor, bandID); err != nil {
		return nil, err
	}

	inv, err := NewInvitation(bandID, actor.TalentProfileID, s.now())
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := s.store.CreateInvitation(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// JoinWithCode redeems an invitation code for the actor.
func (s *Service) JoinWithCode(ctx context.Context, actor Actor, code string) (*Band, error) {
	inv, err := s.store.FindInvitation(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if err := CheckInvitation(inv, s.now()); err != nil {
		return nil, err
	}

	if _, existing, err := s.store.MembershipOf(ctx, actor.TalentProfileID); err != nil {
		return nil, err
	} else if err := CheckNotInBand(existing); err != nil {
		return nil, err
	}

	band, err := s.store.GetBand(ctx, inv.BandID)
	if err != nil {
		return nil, err
	}
	if band == nil {
		return nil, apperrors.ErrBandNotFound
	}

	m := &Membership{
		BandID:          band.ID,
		TalentProfileID: actor.TalentProfileID,
		Role:            RoleMember,
		JoinedAt:        s.now(),
	}
	if err := s.store.RedeemInvitation(ctx, inv, m); err != nil {
		return nil, err
	}

	s.invalidate(ctx, band.ID)
	return band, nil
}

// Promote makes a member an admin, respecting the admin ceiling.
func (s *Service) Promote(ctx context.Context, actor Actor, bandID, talentProfileID uint) (*Membership, error) {
	if _, err := s.requireAdmin(ctx, actor, bandID); err != nil {
		return nil, err
	}
	target, err := s.requireMember(ctx, bandID, talentProfileID)
	if err != nil {
		return nil, err
	}
	if target.IsAdmin() {
		return target, nil
	}

	members, admins, err := s.store.CountMembers(ctx, bandID)
	if err != nil {
		return nil, err
	}
	if err := CheckCanPromote(admins, members); err != nil {
		return nil, err
	}

	if err := s.store.UpdateRole(ctx, target.ID, RoleAdmin); err != nil {
		return nil, err
	}
	target.Role = RoleAdmin
	return target, nil
}

// Demote turns an admin back into a member. The last admin cannot be demoted.
func (s *Service) Demote(ctx context.Context, actor Actor, bandID, talentProfileID uint) (*Membership, error) {
	if _, err := s.requireAdmin(ctx, actor, bandID); err != nil {
		return nil, err
	}
	target, err := s.requireMember(ctx, bandID, talentProfileID)
	if err != nil {
		return nil, err
	}
	if !target.IsAdmin() {
		return target, nil
	}

	_, admins, err := s.store.CountMembers(ctx, bandID)
	if err != nil {
		return nil, err
	}
	if admins <= 1 {
		return nil, errLastAdmin
	}

	if err := s.store.UpdateRole(ctx, target.ID, RoleMember); err != nil {
		return nil, err
	}
	target.Role = RoleMember
	return target, nil
}

// Leave removes the actor from the band. The last admin may only leave when
// nobody else remains.
func (s *Service) Leave(ctx context.Context, actor Actor, bandID uint) error {
	m, err := s.requireMember(ctx, bandID, actor.TalentProfileID)
	if err != nil {
		return err
	}

	if m.IsAdmin() {
		members, admins, err := s.store.CountMembers(ctx, bandID)
		if err != nil {
			return err
		}
		if admins <= 1 && members > 1 {
			return errLastAdmin
		}
	}

	if err := s.store.RemoveMember(ctx, m.ID); err != nil {
		return err
	}
	s.invalidate(ctx, bandID)
	return nil
}

func (s *Service) requireAdmin(ctx context.Context, actor Actor, bandID uint) (*Membership, error) {
	m, err := s.store.GetMembership(ctx, bandID, actor.TalentProfileID)
	if err != nil {
		return nil, err
	}
	if m == nil || !m.IsAdmin() {
		return nil, errNotBandAdmin
	}
	return m, nil
}

func (s *Service) requireMember(ctx context.Context, bandID, talentProfileID uint) (*Membership, error) {
	m, err := s.store.GetMembership(ctx, bandID, talentProfileID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperrors.ErrMembershipNotFound
	}
	return m, nil
}

func (s *Service) invalidate(ctx context.Context, bandID uint) {
	if s.scores != nil {
		s.scores.Invalidate(ctx, media.OwnerBand, bandID)
	}
}
