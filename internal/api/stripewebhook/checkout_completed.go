package stripewebhooks

import (
	"errors"
	"fmt"

	"talent-marketplace/internal/domain/billing"
	"talent-marketplace/internal/domain/users"
	"talent-marketplace/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/subscription"
	"go.uber.org/zap"
)

func (h *Handler) handleCheckoutSessionCompleted(c *gin.Context, session *stripe.CheckoutSession) error {
	ctx := c.Request.Context()

	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}
	if fullSession.Subscription == nil || fullSession.Subscription.ID == "" {
		return errors.New("checkout session missing subscription")
	}

	subData, err := subscription.Get(fullSession.Subscription.ID, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch subscription: %w", err)
	}
	priceID := activePriceID(subData)
	if priceID == "" {
		return errors.New("subscription has no price item")
	}

	userID := userIDFromMetadata(subData.Metadata)
	if userID == 0 {
		if userID, err = parseUserID(fullSession.ClientReferenceID); err != nil {
			return err
		}
	}

	var user users.User
	if err := h.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	plan, err := h.planForPrice(ctx, priceID)
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("plan not found for stripe price_id=%s", priceID)
	}

	row, err := h.Subs.FindSubscription(ctx, user.ID, plan.Family)
	if err != nil {
		return err
	}
	if row == nil {
		row = &billing.Subscription{UserID: user.ID, Family: plan.Family}
	}

	// A second checkout in the same family replaces the old Stripe subscription.
	if row.StripeSubscriptionID != nil && *row.StripeSubscriptionID != "" && *row.StripeSubscriptionID != subData.ID {
		if _, err := subscription.Cancel(*row.StripeSubscriptionID, nil); err != nil {
			logger.FromContext(ctx).Warn("failed to cancel replaced subscription",
				zap.String("subscription_id", *row.StripeSubscriptionID), zap.Error(err))
		}
	}

	row.PendingPlanID = nil
	row.PendingPlan = nil
	row.PendingPlanStartDate = nil
	row.StripeScheduleID = nil
	applyStripe(row, subData, plan)

	if err := h.Subs.Upsert(ctx, row); err != nil {
		return fmt.Errorf("failed to store subscription after checkout: %w", err)
	}

	if fullSession.Customer != nil && fullSession.Customer.ID != "" &&
		(user.StripeCustomerID == nil || *user.StripeCustomerID != fullSession.Customer.ID) {
		if err := h.DB.WithContext(ctx).Model(&users.User{}).
			Where("id = ?", user.ID).
			Update("stripe_customer_id", fullSession.Customer.ID).Error; err != nil {
			return fmt.Errorf("failed to store stripe customer: %w", err)
		}
	}
	return nil
}
