package profiles

import (
	"strings"
	"time"

	"talent-marketplace/internal/domain/media"
	"talent-marketplace/internal/domain/profiles"
	"talent-marketplace/internal/domain/scoring"
)

type socialInput struct {
	Instagram string `json:"instagram" binding:"omitempty,url"`
	TikTok    string `json:"tiktok" binding:"omitempty,url"`
	YouTube   string `json:"youtube" binding:"omitempty,url"`
	Facebook  string `json:"facebook" binding:"omitempty,url"`
	X         string `json:"x" binding:"omitempty,url"`
	Website   string `json:"website" binding:"omitempty,url"`
}

func (s *socialInput) toLinks() profiles.SocialLinks {
	return profiles.SocialLinks{
		Instagram: strings.TrimSpace(s.Instagram),
		TikTok:    strings.TrimSpace(s.TikTok),
		YouTube:   strings.TrimSpace(s.YouTube),
		Facebook:  strings.TrimSpace(s.Facebook),
		X:         strings.TrimSpace(s.X),
		Website:   strings.TrimSpace(s.Website),
	}
}

// Pointer fields distinguish "leave as is" from "clear".
type talentUpdate struct {
	DisplayName *string      `json:"display_name" binding:"omitempty,max=120"`
	Bio         *string      `json:"bio" binding:"omitempty,max=5000"`
	PictureURL  *string      `json:"picture_url" binding:"omitempty,url"`
	Country     *string      `json:"country" binding:"omitempty,max=80"`
	DateOfBirth *string      `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Social      *socialInput `json:"social"`
}

type backgroundUpdate struct {
	CompanyName *string      `json:"company_name" binding:"omitempty,max=160"`
	Bio         *string      `json:"bio" binding:"omitempty,max=5000"`
	PictureURL  *string      `json:"picture_url" binding:"omitempty,url"`
	Country     *string      `json:"country" binding:"omitempty,max=80"`
	Phone       *string      `json:"phone" binding:"omitempty,max=40"`
	Social      *socialInput `json:"social"`
}

func (u *talentUpdate) apply(p *profiles.TalentProfile) {
	if u.DisplayName != nil {
		p.DisplayName = strings.TrimSpace(*u.DisplayName)
	}
	if u.Bio != nil {
		p.Bio = strings.TrimSpace(*u.Bio)
	}
	if u.PictureURL != nil {
		p.PictureURL = strings.TrimSpace(*u.PictureURL)
	}
	if u.Country != nil {
		p.Country = strings.TrimSpace(*u.Country)
	}
	if u.DateOfBirth != nil {
		if *u.DateOfBirth == "" {
			p.DateOfBirth = nil
		} else if dob, err := time.Parse("2006-01-02", *u.DateOfBirth); err == nil {
			p.DateOfBirth = &dob
		}
	}
	if u.Social != nil {
		p.Social = u.Social.toLinks()
	}
}

func (u *backgroundUpdate) apply(p *profiles.BackgroundProfile) {
	if u.CompanyName != nil {
		p.CompanyName = strings.TrimSpace(*u.CompanyName)
	}
	if u.Bio != nil {
		p.Bio = strings.TrimSpace(*u.Bio)
	}
	if u.PictureURL != nil {
		p.PictureURL = strings.TrimSpace(*u.PictureURL)
	}
	if u.Country != nil {
		p.Country = strings.TrimSpace(*u.Country)
	}
	if u.Phone != nil {
		p.Phone = strings.TrimSpace(*u.Phone)
	}
	if u.Social != nil {
		p.Social = u.Social.toLinks()
	}
}

type TalentDTO struct {
	ID              uint                       `json:"id"`
	DisplayName     string                     `json:"display_name"`
	Bio             string                     `json:"bio"`
	PictureURL      string                     `json:"picture_url"`
	Country         string                     `json:"country"`
	DateOfBirth     *time.Time                 `json:"date_of_birth,omitempty"`
	Slug            string                     `json:"slug"`
	PublicURL       string                     `json:"public_url"`
	AccountTier     string                     `json:"account_tier"`
	IsVerified      bool                       `json:"is_verified"`
	IsCompleted     bool                       `json:"is_completed"`
	Social          profiles.SocialLinks       `json:"social"`
	Visual          *profiles.VisualWorker     `json:"visual,omitempty"`
	Expressive      *profiles.ExpressiveWorker `json:"expressive,omitempty"`
	Hybrid          *profiles.HybridWorker     `json:"hybrid,omitempty"`
	Specializations []string                   `json:"specializations"`
	Media           []media.Item               `json:"media"`
	Score           *scoring.Breakdown         `json:"score,omitempty"`
}

func buildTalentDTO(p *profiles.TalentProfile, appURL string, private bool) TalentDTO {
	dto := TalentDTO{
		ID:              p.ID,
		DisplayName:     p.DisplayName,
		Bio:             p.Bio,
		PictureURL:      p.PictureURL,
		Country:         p.Country,
		AccountTier:     p.Tier(),
		IsVerified:      p.IsVerified,
		IsCompleted:     p.IsCompleted,
		Social:          p.Social,
		Visual:          p.VisualWorker,
		Expressive:      p.ExpressiveWorker,
		Hybrid:          p.HybridWorker,
		Specializations: p.Specializations(),
		Media:           p.Media,
	}
	if private {
		dto.DateOfBirth = p.DateOfBirth
	}
	if p.Slug != nil {
		dto.Slug = *p.Slug
		dto.PublicURL = profiles.PublicURL(appURL, *p.Slug)
	}
	if dto.Media == nil {
		dto.Media = []media.Item{}
	}
	return dto
}

type BackgroundDTO struct {
	ID           uint                 `json:"id"`
	CompanyName  string               `json:"company_name"`
	Bio          string               `json:"bio"`
	PictureURL   string               `json:"picture_url"`
	Country      string               `json:"country"`
	Phone        string               `json:"phone"`
	AccountTier  string               `json:"account_tier"`
	IsVerified   bool                 `json:"is_verified"`
	IsCompleted  bool                 `json:"is_completed"`
	Social       profiles.SocialLinks `json:"social"`
	ListingCount int                  `json:"listing_count"`
	Media        []media.Item         `json:"media"`
}

func buildBackgroundDTO(p *profiles.BackgroundProfile) BackgroundDTO {
	dto := BackgroundDTO{
		ID:           p.ID,
		CompanyName:  p.CompanyName,
		Bio:          p.Bio,
		PictureURL:   p.PictureURL,
		Country:      p.Country,
		Phone:        p.Phone,
		AccountTier:  p.Tier(),
		IsVerified:   p.IsVerified,
		IsCompleted:  p.IsCompleted,
		Social:       p.Social,
		ListingCount: p.ListingCount,
		Media:        p.Media,
	}
	if dto.Media == nil {
		dto.Media = []media.Item{}
	}
	return dto
}
