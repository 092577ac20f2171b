package billing

import (
	"time"

	"talent-marketplace/internal/domain/plans"
)

const (
	StatusActive     = "active"
	StatusTrialing   = "trialing"
	StatusPastDue    = "past_due"
	StatusCanceled   = "canceled"
	StatusIncomplete = "incomplete"
)

// Subscription is one row per user and plan family. Rows created by dashboard
// approval have no StripeSubscriptionID.
type Subscription struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_subscriptions_user_family"`
	Family string `gorm:"type:varchar(20);not null;uniqueIndex:idx_subscriptions_user_family"`

	PlanID *uint
	Plan   *plans.Plan
	Tier   string `gorm:"type:varchar(20);not null;default:'free'"`

	Status   string `gorm:"type:varchar(30);not null;index"`
	IsActive bool   `gorm:"not null;default:false"`

	StripeSubscriptionID *string `gorm:"column:stripe_subscription_id;uniqueIndex"`
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time

	PendingPlanID        *uint       `gorm:"column:pending_plan_id"`
	PendingPlan          *plans.Plan `gorm:"foreignKey:PendingPlanID"`
	PendingPlanStartDate *time.Time  `gorm:"column:pending_plan_start_date"`
	StripeScheduleID     *string     `gorm:"column:stripe_schedule_id"`

	ManuallyGranted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Live reports whether the row grants paid features right now.
func (s *Subscription) Live() bool {
	return s != nil && s.Status == StatusActive && s.IsActive
}

// IsActiveStatus tells whether a Stripe status keeps the subscription usable.
func IsActiveStatus(status string) bool {
	return status == StatusActive || status == StatusTrialing
}
