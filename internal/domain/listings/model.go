package listings

import "time"

const (
	KindShare = "share"
	KindRent  = "rent"
	KindSell  = "sell"
)

// Listing is an item a background provider offers to share, rent out or sell.
type Listing struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	BackgroundProfileID uint   `gorm:"not null;index" json:"background_profile_id"`
	Kind                string `gorm:"type:varchar(10);not null" json:"kind"`

	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `gorm:"type:varchar(3)" json:"currency"`
	Country     string  `json:"country"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidKind(k string) bool {
	switch k {
	case KindShare, KindRent, KindSell:
		return true
	}
	return false
}
