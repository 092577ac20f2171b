package profiles

import (
	"time"

	"talent-marketplace/internal/domain/media"
	"talent-marketplace/internal/domain/plans"
)

type TalentProfile struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;uniqueIndex"`

	AccountTier string `gorm:"type:varchar(20);not null;default:'free'"`
	IsVerified  bool   `gorm:"not null;default:false"`
	IsCompleted bool   `gorm:"not null;default:false"`

	DisplayName string
	Bio         string `gorm:"type:text"`
	PictureURL  string
	Country     string `gorm:"index"`
	DateOfBirth *time.Time
	Slug        *string `gorm:"uniqueIndex"`

	Social SocialLinks `gorm:"embedded;embeddedPrefix:social_"`

	VisualWorker     *VisualWorker     `gorm:"foreignKey:TalentProfileID;constraint:OnDelete:CASCADE"`
	ExpressiveWorker *ExpressiveWorker `gorm:"foreignKey:TalentProfileID;constraint:OnDelete:CASCADE"`
	HybridWorker     *HybridWorker     `gorm:"foreignKey:TalentProfileID;constraint:OnDelete:CASCADE"`

	Media []media.Item `gorm:"polymorphic:Owner;polymorphicValue:talent"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Specializations lists the kinds attached to the profile.
func (p *TalentProfile) Specializations() []string {
	var out []string
	if p.VisualWorker != nil {
		out = append(out, SpecializationVisual)
	}
	if p.ExpressiveWorker != nil {
		out = append(out, SpecializationExpressive)
	}
	if p.HybridWorker != nil {
		out = append(out, SpecializationHybrid)
	}
	return out
}

func (p *TalentProfile) Tier() string {
	if p.AccountTier == "" {
		return plans.TierFree
	}
	return p.AccountTier
}
