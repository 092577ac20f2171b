package bands

import (
	"time"

	"talent-marketplace/internal/domain/media"
	"talent-marketplace/internal/domain/profiles"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type Band struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string `gorm:"type:text"`
	PictureURL  string
	Genre       string
	Country     string `gorm:"index"`
	IsVerified  bool   `gorm:"not null;default:false"`

	CreatorProfileID uint `gorm:"not null;index"`

	Social profiles.SocialLinks `gorm:"embedded;embeddedPrefix:social_"`

	Members []Membership `gorm:"foreignKey:BandID;constraint:OnDelete:CASCADE"`
	Media   []media.Item `gorm:"polymorphic:Owner;polymorphicValue:band"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Membership joins a talent profile to a band. A talent profile appears in
// at most one row.
type Membership struct {
	ID              uint   `gorm:"primaryKey"`
	BandID          uint   `gorm:"not null;index"`
	TalentProfileID uint   `gorm:"not null;uniqueIndex"`
	Role            string `gorm:"type:varchar(10);not null;default:'member'"`
	JoinedAt        time.Time
}

func (Membership) TableName() string { return "band_memberships" }

func (m Membership) IsAdmin() bool { return m.Role == RoleAdmin }

type Invitation struct {
	ID                 uint   `gorm:"primaryKey"`
	BandID             uint   `gorm:"not null;index"`
	Code               string `gorm:"type:varchar(8);not null;uniqueIndex"`
	CreatedByProfileID uint
	CreatedAt          time.Time
	ExpiresAt          time.Time
	UsedAt             *time.Time
	UsedByProfileID    *uint
}

func (Invitation) TableName() string { return "band_invitations" }

func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleMember
}
