package stripewebhooks

import (
	"errors"

	"talent-marketplace/internal/domain/billing"
	"talent-marketplace/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// handleInvoicePaid records a Payment row. Replays are ignored via the invoice id.
func (h *Handler) handleInvoicePaid(c *gin.Context, inv *stripe.Invoice) error {
	if inv.ID == "" || inv.Customer == nil || inv.Customer.ID == "" {
		return nil
	}
	ctx := c.Request.Context()

	var user users.User
	err := h.DB.WithContext(ctx).Where("stripe_customer_id = ?", inv.Customer.ID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	payment := billing.Payment{
		UserID:    user.ID,
		Amount:    float64(inv.AmountPaid) / 100.0,
		Currency:  string(inv.Currency),
		Status:    "paid",
		InvoiceID: stripe.String(inv.ID),
	}
	if inv.HostedInvoiceURL != "" {
		payment.ReceiptURL = stripe.String(inv.HostedInvoiceURL)
	}
	if inv.Subscription != nil && inv.Subscription.ID != "" {
		payment.StripeSubscriptionID = stripe.String(inv.Subscription.ID)
	}
	if inv.Lines != nil && len(inv.Lines.Data) > 0 && inv.Lines.Data[0].Price != nil {
		plan, err := h.planForPrice(ctx, inv.Lines.Data[0].Price.ID)
		if err != nil {
			return err
		}
		if plan != nil {
			payment.PlanID = &plan.ID
		}
	}

	return h.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "invoice_id"}}, DoNothing: true}).
		Omit("User", "Plan").
		Create(&payment).Error
}
