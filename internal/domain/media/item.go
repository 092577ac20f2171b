package media

import (
	"strings"
	"time"
)

const (
	KindImage = "image"
	KindVideo = "video"

	OwnerTalent     = "talent"
	OwnerBackground = "background"
	OwnerBand       = "band"
)

// Item is a single uploaded file. OwnerType/OwnerID form a polymorphic
// reference to exactly one profile.
type Item struct {
	ID        string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerType string `gorm:"type:varchar(20);not null;index:idx_media_owner" json:"owner_type"`
	OwnerID   uint   `gorm:"not null;index:idx_media_owner" json:"owner_id"`

	Kind        string `gorm:"type:varchar(10);not null" json:"kind"`
	ObjectKey   string `gorm:"not null" json:"-"`
	URL         string `gorm:"not null" json:"url"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`

	IsTestVideo          bool `gorm:"not null;default:false" json:"is_test_video"`
	IsAboutYourselfVideo bool `gorm:"not null;default:false" json:"is_about_yourself_video"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Item) TableName() string { return "media_items" }

// KindFromContentType maps a MIME type to a media kind, or "" when unsupported.
func KindFromContentType(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return KindImage
	case strings.HasPrefix(ct, "video/"):
		return KindVideo
	}
	return ""
}

func IsValidOwnerType(t string) bool {
	return t == OwnerTalent || t == OwnerBackground || t == OwnerBand
}
