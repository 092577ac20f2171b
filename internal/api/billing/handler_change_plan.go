package billing

import (
	"net/http"
	"time"

	"talent-marketplace/internal/api/reqctx"
	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/billing"
	"talent-marketplace/internal/domain/plans"
	"talent-marketplace/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	stripesub "github.com/stripe/stripe-go/v75/subscription"
	schedules "github.com/stripe/stripe-go/v75/subscriptionschedule"
)

var errNoStripeSubscription = apperrors.Validation("No active subscription to change. Use checkout first.")

// ChangePlan moves the caller's subscription in the target plan's family.
// Upgrades apply now with proration; downgrades are scheduled for the next cycle.
func (h *Handler) ChangePlan(c *gin.Context) {
	var body checkoutRequest
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}
	userID, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	target, err := h.planByPrice(ctx, body.PriceID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	sub, err := h.Subs.FindSubscription(ctx, userID, target.Family)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if sub == nil || sub.StripeSubscriptionID == nil || *sub.StripeSubscriptionID == "" {
		apperrors.Respond(c, errNoStripeSubscription)
		return
	}

	current, err := stripesub.Get(*sub.StripeSubscriptionID, nil)
	if err != nil {
		apperrors.Respond(c, stripeFailure(err, "Failed to fetch Stripe subscription"))
		return
	}
	if current.Items == nil || len(current.Items.Data) == 0 || current.Items.Data[0].Price == nil {
		apperrors.Respond(c, apperrors.New(apperrors.CodeExternalService,
			"Subscription has no price item", http.StatusBadGateway))
		return
	}

	item := current.Items.Data[0]
	if item.Price.ID == target.StripePriceID {
		c.JSON(http.StatusOK, gin.H{"message": "Already on this plan"})
		return
	}

	if IsUpgrade(sub.Plan, target) {
		h.upgrade(c, sub, item, target)
		return
	}
	h.scheduleDowngrade(c, sub, current, item.Price.ID, target)
}

// IsUpgrade compares by price; a row without a plan always upgrades.
func IsUpgrade(current, target *plans.Plan) bool {
	if current == nil {
		return true
	}
	return target.Price > current.Price
}

func (h *Handler) upgrade(c *gin.Context, sub *billing.Subscription, item *stripe.SubscriptionItem, target *plans.Plan) {
	updated, err := stripesub.Update(*sub.StripeSubscriptionID, &stripe.SubscriptionParams{
		Items: []*stripe.SubscriptionItemsParams{
			{ID: stripe.String(item.ID), Price: stripe.String(target.StripePriceID)},
		},
		ProrationBehavior: stripe.String("create_prorations"),
	})
	if err != nil {
		apperrors.Respond(c, stripeFailure(err, "Failed to upgrade subscription"))
		return
	}

	now := time.Now()
	periodEnd := time.Unix(updated.CurrentPeriodEnd, 0)
	sub.PlanID = &target.ID
	sub.Plan = target
	sub.Tier = plans.PlanTier(target)
	sub.CurrentPeriodStart = &now
	sub.CurrentPeriodEnd = &periodEnd
	clearPending(sub)

	if err := h.Subs.Save(c.Request.Context(), sub); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":            "Upgraded now (prorated automatically by Stripe)",
		"is_upgrade":         true,
		"tier":               sub.Tier,
		"current_period_end": periodEnd,
		"subscription_id":    updated.ID,
	})
}

func (h *Handler) scheduleDowngrade(c *gin.Context, sub *billing.Subscription, current *stripe.Subscription, currentPriceID string, target *plans.Plan) {
	periodStart := current.CurrentPeriodStart
	periodEnd := current.CurrentPeriodEnd
	effectiveAt := time.Unix(periodEnd, 0)

	scheduleID := ""
	if current.Schedule != nil {
		scheduleID = current.Schedule.ID
	}
	if scheduleID == "" {
		schedule, err := schedules.New(&stripe.SubscriptionScheduleParams{
			FromSubscription: stripe.String(current.ID),
		})
		if err != nil {
			apperrors.Respond(c, stripeFailure(err, "Failed to create schedule"))
			return
		}
		scheduleID = schedule.ID
	}

	_, err := schedules.Update(scheduleID, &stripe.SubscriptionScheduleParams{
		EndBehavior: stripe.String("release"),
		Phases: []*stripe.SubscriptionSchedulePhaseParams{
			{
				StartDate: stripe.Int64(periodStart),
				EndDate:   stripe.Int64(periodEnd),
				Items: []*stripe.SubscriptionSchedulePhaseItemParams{
					{Price: stripe.String(currentPriceID), Quantity: stripe.Int64(1)},
				},
			},
			{
				StartDate: stripe.Int64(periodEnd),
				Items: []*stripe.SubscriptionSchedulePhaseItemParams{
					{Price: stripe.String(target.StripePriceID), Quantity: stripe.Int64(1)},
				},
			},
		},
	})
	if err != nil {
		apperrors.Respond(c, stripeFailure(err, "Failed to update schedule phases"))
		return
	}

	// The current plan stays until effectiveAt; the webhook swaps it.
	sub.PendingPlanID = &target.ID
	sub.PendingPlanStartDate = &effectiveAt
	sub.StripeScheduleID = &scheduleID
	sub.CurrentPeriodEnd = &effectiveAt

	if err := h.Subs.Save(c.Request.Context(), sub); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Downgrade scheduled for next billing cycle",
		"is_upgrade":   false,
		"effective_at": effectiveAt,
		"schedule_id":  scheduleID,
	})
}

func clearPending(sub *billing.Subscription) {
	sub.PendingPlanID = nil
	sub.PendingPlan = nil
	sub.PendingPlanStartDate = nil
	sub.StripeScheduleID = nil
}

func stripeFailure(err error, message string) error {
	return apperrors.Wrap(err, apperrors.CodeExternalService, message, http.StatusBadGateway)
}
