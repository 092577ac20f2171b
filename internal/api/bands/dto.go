package bands

import (
	"time"

	"talent-marketplace/internal/domain/bands"
	"talent-marketplace/internal/domain/media"
	"talent-marketplace/internal/domain/profiles"
)

type MemberDTO struct {
	TalentProfileID uint      `json:"talent_profile_id"`
	Role            string    `json:"role"`
	JoinedAt        time.Time `json:"joined_at"`
}

type BandDTO struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	PictureURL  string               `json:"picture_url"`
	Genre       string               `json:"genre"`
	Country     string               `json:"country"`
	IsVerified  bool                 `json:"is_verified"`
	Social      profiles.SocialLinks `json:"social"`
	Members     []MemberDTO          `json:"members"`
	Media       []media.Item         `json:"media"`
	CreatedAt   time.Time            `json:"created_at"`
}

func BuildMemberDTO(m bands.Membership) MemberDTO {
	return MemberDTO{TalentProfileID: m.TalentProfileID, Role: m.Role, JoinedAt: m.JoinedAt}
}

func BuildBandDTO(b *bands.Band) BandDTO {
	dto := BandDTO{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		PictureURL:  b.PictureURL,
		Genre:       b.Genre,
		Country:     b.Country,
		IsVerified:  b.IsVerified,
		Social:      b.Social,
		Members:     make([]MemberDTO, 0, len(b.Members)),
		Media:       b.Media,
		CreatedAt:   b.CreatedAt,
	}
	for _, m := range b.Members {
		dto.Members = append(dto.Members, BuildMemberDTO(m))
	}
	if dto.Media == nil {
		dto.Media = []media.Item{}
	}
	return dto
}
