package users

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	TypeTalent     = "talent"
	TypeBackground = "background"

	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Lastname     string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string  `gorm:"type:varchar(20);not null;default:'user'"`
	UserType     string  `gorm:"column:user_type;type:varchar(20);not null;default:'talent';index"`
	IsVerified   bool

	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) IsBackground() bool { return u.UserType == TypeBackground }

func (u User) IsTalent() bool { return u.UserType == TypeTalent }

func IsValidType(t string) bool {
	return t == TypeTalent || t == TypeBackground
}
