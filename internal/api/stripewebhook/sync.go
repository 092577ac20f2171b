package stripewebhooks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"talent-marketplace/internal/domain/billing"
	"talent-marketplace/internal/domain/plans"
	stripestatus "talent-marketplace/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// applyStripe copies Stripe's view of a subscription onto the local row.
// A pending downgrade is cleared once Stripe reports the pending plan.
func applyStripe(row *billing.Subscription, s *stripe.Subscription, plan *plans.Plan) {
	status := stripestatus.NormalizeStripeStatus(string(s.Status))
	row.Status = status
	row.IsActive = stripestatus.GrantsAccess(string(s.Status))
	row.StripeSubscriptionID = stripe.String(s.ID)
	row.ManuallyGranted = false

	if s.CurrentPeriodStart > 0 {
		start := time.Unix(s.CurrentPeriodStart, 0)
		row.CurrentPeriodStart = &start
	}
	if s.CurrentPeriodEnd > 0 {
		end := time.Unix(s.CurrentPeriodEnd, 0)
		row.CurrentPeriodEnd = &end
	}

	if plan != nil {
		row.PlanID = &plan.ID
		row.Plan = plan
		row.Tier = plans.PlanTier(plan)
		if row.Family == "" {
			row.Family = plan.Family
		}
		if row.PendingPlanID != nil && *row.PendingPlanID == plan.ID {
			row.PendingPlanID = nil
			row.PendingPlan = nil
			row.PendingPlanStartDate = nil
			row.StripeScheduleID = nil
		}
	}
}

func activePriceID(s *stripe.Subscription) string {
	if s == nil || s.Items == nil || len(s.Items.Data) == 0 || s.Items.Data[0].Price == nil {
		return ""
	}
	return s.Items.Data[0].Price.ID
}

func (h *Handler) planForPrice(ctx context.Context, priceID string) (*plans.Plan, error) {
	if priceID == "" {
		return nil, nil
	}
	var plan plans.Plan
	err := h.DB.WithContext(ctx).Where("stripe_price_id = ?", priceID).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func userIDFromMetadata(md map[string]string) uint {
	id, _ := parseUserID(md["user_id"])
	return id
}

func parseUserID(s string) (uint, error) {
	if s == "" {
		return 0, errors.New("missing user_id")
	}
	uid, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user_id %q: %w", s, err)
	}
	return uint(uid), nil
}

// findRow locates the local row by Stripe id, falling back to the user and
// family stored in the subscription metadata.
func (h *Handler) findRow(ctx context.Context, s *stripe.Subscription, plan *plans.Plan) (*billing.Subscription, error) {
	row, err := h.Subs.FindByStripeID(ctx, s.ID)
	if err != nil || row != nil {
		return row, err
	}

	userID := userIDFromMetadata(s.Metadata)
	family := s.Metadata["family"]
	if family == "" && plan != nil {
		family = plan.Family
	}
	if userID == 0 || family == "" {
		return nil, nil
	}
	return h.Subs.FindSubscription(ctx, userID, family)
}
