package stripewebhooks

import (
	"errors"

	"talent-marketplace/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
)

func (h *Handler) handleSubscriptionUpdated(c *gin.Context, sub *stripe.Subscription) error {
	ctx := c.Request.Context()
	priceID := activePriceID(sub)
	if sub.ID == "" || priceID == "" {
		return errors.New("subscription missing id/items/price")
	}

	plan, err := h.planForPrice(ctx, priceID)
	if err != nil {
		return err
	}
	if plan == nil {
		// Unknown price: acknowledge so Stripe stops retrying; a plan sync fixes it.
		logger.FromContext(ctx).Warn("subscription updated with unknown price", zap.String("price_id", priceID))
		return nil
	}

	row, err := h.findRow(ctx, sub, plan)
	if err != nil {
		return err
	}
	if row == nil {
		return nil
	}

	applyStripe(row, sub, plan)
	return h.Subs.Save(ctx, row)
}

func (h *Handler) handleSubscriptionDeleted(c *gin.Context, sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}
	ctx := c.Request.Context()

	row, err := h.findRow(ctx, sub, nil)
	if err != nil {
		return err
	}
	if row == nil {
		return nil
	}

	applyStripe(row, sub, nil)
	row.IsActive = false
	return h.Subs.Save(ctx, row)
}
