package users

import (
	"talent-marketplace/internal/domain/bands"
	"talent-marketplace/internal/domain/billing"
	"talent-marketplace/internal/domain/plans"
	"talent-marketplace/internal/domain/profiles"
	"talent-marketplace/internal/domain/users"
)

func BuildUserDTO(u users.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Lastname:     u.Lastname,
		Role:         u.Role,
		UserType:     u.UserType,
		AuthProvider: u.AuthProvider,
		IsVerified:   u.IsVerified,
	}
}

func BuildTalentDTO(p *profiles.TalentProfile, appURL string) *ProfileDTO {
	if p == nil {
		return nil
	}
	dto := &ProfileDTO{
		ID:              p.ID,
		Kind:            users.TypeTalent,
		Name:            p.DisplayName,
		AccountTier:     p.Tier(),
		IsVerified:      p.IsVerified,
		IsCompleted:     p.IsCompleted,
		Country:         p.Country,
		PictureURL:      p.PictureURL,
		Specializations: p.Specializations(),
	}
	if p.Slug != nil && *p.Slug != "" {
		dto.PublicURL = profiles.PublicURL(appURL, *p.Slug)
	}
	return dto
}

func BuildBackgroundDTO(p *profiles.BackgroundProfile) *ProfileDTO {
	if p == nil {
		return nil
	}
	return &ProfileDTO{
		ID:          p.ID,
		Kind:        users.TypeBackground,
		Name:        p.CompanyName,
		AccountTier: p.Tier(),
		IsVerified:  p.IsVerified,
		IsCompleted: p.IsCompleted,
		Country:     p.Country,
		PictureURL:  p.PictureURL,
	}
}

func BuildBandDTO(m *bands.Membership, b *bands.Band) *BandDTO {
	if m == nil || b == nil {
		return nil
	}
	return &BandDTO{ID: b.ID, Name: b.Name, Role: m.Role}
}

func BuildPlanDTO(p *plans.Plan) *PlanDTO {
	if p == nil {
		return nil
	}
	return &PlanDTO{
		ID:            p.ID,
		Name:          p.Name,
		Tier:          plans.PlanTier(p),
		Interval:      p.Interval,
		Price:         p.Price,
		Currency:      p.Currency,
		StripePriceID: p.StripePriceID,
	}
}

func BuildSubscriptionDTOs(subs []billing.Subscription) []SubscriptionDTO {
	out := make([]SubscriptionDTO, 0, len(subs))
	for i := range subs {
		s := &subs[i]
		dto := SubscriptionDTO{
			Family:               s.Family,
			Tier:                 s.Tier,
			Status:               s.Status,
			IsActive:             s.Live(),
			ManuallyGranted:      s.ManuallyGranted,
			Plan:                 BuildPlanDTO(s.Plan),
			CurrentPeriodEnd:     s.CurrentPeriodEnd,
			StripeSubscriptionID: s.StripeSubscriptionID,
		}
		if s.PendingPlanID != nil {
			dto.PendingChange = &PendingChangeDTO{
				EffectiveAt: s.PendingPlanStartDate,
				Plan:        BuildPlanDTO(s.PendingPlan),
			}
		}
		out = append(out, dto)
	}
	return out
}
