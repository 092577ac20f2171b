package billing

import (
	"net/http"

	"talent-marketplace/internal/api/reqctx"
	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/validation"

	"github.com/gin-gonic/gin"
	schedules "github.com/stripe/stripe-go/v75/subscriptionschedule"
)

type familyRequest struct {
	Family string `json:"family" binding:"required,plan_family"`
}

// CancelDowngrade releases the Stripe schedule so the subscription continues
// on its current plan.
func (h *Handler) CancelDowngrade(c *gin.Context) {
	var body familyRequest
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

	sub, err := h.Subs.FindSubscription(ctx, userID, body.Family)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if sub == nil || sub.StripeScheduleID == nil || *sub.StripeScheduleID == "" || sub.PendingPlanID == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No pending downgrade to cancel"})
		return
	}

	scheduleID := *sub.StripeScheduleID
	if _, err := schedules.Release(scheduleID, nil); err != nil {
		apperrors.Respond(c, stripeFailure(err, "Failed to release Stripe schedule"))
		return
	}

	clearPending(sub)
	if err := h.Subs.Save(ctx, sub); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Pending downgrade cancelled",
		"schedule_id": scheduleID,
	})
}
