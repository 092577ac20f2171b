package users

import (
	"time"

	"talent-marketplace/internal/domain/access"
	"talent-marketplace/internal/domain/scoring"
)

type MeResponse struct {
	User          UserDTO            `json:"user"`
	Profile       *ProfileDTO        `json:"profile"`
	Band          *BandDTO           `json:"band,omitempty"`
	Subscriptions []SubscriptionDTO  `json:"subscriptions"`
	Access        access.GateResult  `json:"access"`
	Score         *scoring.Breakdown `json:"score"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Lastname     string `json:"lastname"`
	Role         string `json:"role"`
	UserType     string `json:"user_type"`
	AuthProvider string `json:"auth_provider"`
	IsVerified   bool   `json:"is_verified"`
}

/* ---------- PROFILE ---------- */

type ProfileDTO struct {
	ID              uint     `json:"id"`
	Kind            string   `json:"kind"`
	Name            string   `json:"name"`
	AccountTier     string   `json:"account_tier"`
	IsVerified      bool     `json:"is_verified"`
	IsCompleted     bool     `json:"is_completed"`
	Country         string   `json:"country"`
	PictureURL      string   `json:"picture_url"`
	PublicURL       string   `json:"public_url,omitempty"`
	Specializations []string `json:"specializations,omitempty"`
}

type BandDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

/* ---------- BILLING ---------- */

type PlanDTO struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Tier          string  `json:"tier"`
	Interval      string  `json:"interval"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	StripePriceID string  `json:"stripe_price_id"`
}

type SubscriptionDTO struct {
	Family               string            `json:"family"`
	Tier                 string            `json:"tier"`
	Status               string            `json:"status"`
	IsActive             bool              `json:"is_active"`
	ManuallyGranted      bool              `json:"manually_granted"`
	Plan                 *PlanDTO          `json:"plan"`
	CurrentPeriodEnd     *time.Time        `json:"current_period_end"`
	StripeSubscriptionID *string           `json:"stripe_subscription_id"`
	PendingChange        *PendingChangeDTO `json:"pending_change"`
}

type PendingChangeDTO struct {
	EffectiveAt *time.Time `json:"effective_at"`
	Plan        *PlanDTO   `json:"plan"`
}
