package profiles

import (
	"time"

	"talent-marketplace/internal/domain/media"
	"talent-marketplace/internal/domain/plans"
)

// BackgroundProfile belongs to a background-job provider (equipment, locations, crews).
type BackgroundProfile struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;uniqueIndex"`

	AccountTier string `gorm:"type:varchar(20);not null;default:'free'"`
	IsVerified  bool   `gorm:"not null;default:false"`
	IsCompleted bool   `gorm:"not null;default:false"`

	CompanyName string
	Bio         string `gorm:"type:text"`
	PictureURL  string
	Country     string `gorm:"index"`
	Phone       string

	Social SocialLinks `gorm:"embedded;embeddedPrefix:social_"`

	Media []media.Item `gorm:"polymorphic:Owner;polymorphicValue:background"`

	// ListingCount is filled by the loader; listings live in their own table.
	ListingCount int `gorm:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *BackgroundProfile) Tier() string {
	if p.AccountTier == "" {
		return plans.TierFree
	}
	return p.AccountTier
}
