package billing

import (
	"time"

	"talent-marketplace/internal/domain/plans"
	"talent-marketplace/internal/domain/users"
)

type Payment struct {
	ID                   uint `gorm:"primaryKey"`
	UserID               uint `gorm:"index"`
	User                 users.User
	PlanID               *uint
	Plan                 *plans.Plan
	StripeSessionID      *string `gorm:"uniqueIndex"`
	StripeSubscriptionID *string
	Amount               float64
	Currency             string
	Status               string
	InvoiceID            *string `gorm:"uniqueIndex"`
	ReceiptURL           *string
	CreatedAt            time.Time
}
