package postgres

import (
	"context"
	"errors"
	"net/http"

	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/bands"

	"gorm.io/gorm"
)

type BandStore struct {
	db *gorm.DB
}

func NewBandStore(db *gorm.DB) *BandStore {
	return &BandStore{db: db}
}

func (s *BandStore) GetBand(ctx context.Context, id uint) (*bands.Band, error) {
	var b bands.Band
	err := s.db.WithContext(ctx).Preload("Members").Preload("Media").First(&b, id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BandStore) MembershipOf(ctx context.Context, talentProfileID uint) (*bands.Membership, *bands.Band, error) {
	var m bands.Membership
	err := s.db.WithContext(ctx).Where("talent_profile_id = ?", talentProfileID).First(&m).Error
	if notFound(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var b bands.Band
	if err := s.db.WithContext(ctx).First(&b, m.BandID).Error; err != nil {
		return nil, nil, err
	}
	return &m, &b, nil
}

func (s *BandStore) GetMembership(ctx context.Context, bandID, talentProfileID uint) (*bands.Membership, error) {
	var m bands.Membership
	err := s.db.WithContext(ctx).
		Where("band_id = ? AND talent_profile_id = ?", bandID, talentProfileID).
		First(&m).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *BandStore) CountMembers(ctx context.Context, bandID uint) (int, int, error) {
	var row struct {
		Members int
		Admins  int
	}
	err := s.db.WithContext(ctx).Model(&bands.Membership{}).
		Select("COUNT(*) AS members, COUNT(*) FILTER (WHERE role = ?) AS admins", bands.RoleAdmin).
		Where("band_id = ?", bandID).
		Scan(&row).Error
	return row.Members, row.Admins, err
}

func (s *BandStore) CreateBand(ctx context.Context, band *bands.Band, creator *bands.Membership) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members", "Media").Create(band).Error; err != nil {
			return err
		}
		creator.BandID = band.ID
		if err := tx.Create(creator).Error; err != nil {
			return membershipConflict(err)
		}
		band.Members = []bands.Membership{*creator}
		return nil
	})
}

func (s *BandStore) UpdateRole(ctx context.Context, membershipID uint, role string) error {
	return s.db.WithContext(ctx).Model(&bands.Membership{}).
		Where("id = ?", membershipID).
		Update("role", role).Error
}

func (s *BandStore) RemoveMember(ctx context.Context, membershipID uint) error {
	return s.db.WithContext(ctx).Delete(&bands.Membership{}, membershipID).Error
}

func (s *BandStore) CreateInvitation(ctx context.Context, inv *bands.Invitation) error {
	return s.db.WithContext(ctx).Create(inv).Error
}

func (s *BandStore) FindInvitation(ctx context.Context, code string) (*bands.Invitation, error) {
	var inv bands.Invitation
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&inv).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// RedeemInvitation claims the code with a conditional update so two
// concurrent joins cannot both succeed.
func (s *BandStore) RedeemInvitation(ctx context.Context, inv *bands.Invitation, m *bands.Membership) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&bands.Invitation{}).
			Where("id = ? AND used_at IS NULL", inv.ID).
			Updates(map[string]any{
				"used_at":            m.JoinedAt,
				"used_by_profile_id": m.TalentProfileID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return bands.ErrInvitationUsed
		}
		return membershipConflict(tx.Create(m).Error)
	})
}

// membershipConflict maps the unique index on talent_profile_id, hit when a
// concurrent request already placed the talent in a band.
func membershipConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.New(apperrors.CodeAlreadyInBand,
			"You are already a member of a band. A talent can only belong to one band at a time.",
			http.StatusBadRequest)
	}
	return err
}
