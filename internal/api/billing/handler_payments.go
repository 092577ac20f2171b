package billing

import (
	"net/http"

	"talent-marketplace/internal/api/reqctx"
	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetPaymentHistory(c *gin.Context) {
	userID, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	var payments []billing.Payment
	if err := h.DB.WithContext(c.Request.Context()).
		Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

// SubscriptionStatus returns the subscription gate result with every family row.
func (h *Handler) SubscriptionStatus(c *gin.Context) {
	userID, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	user, err := h.loadUser(ctx, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	gate, err := h.Access.Check(ctx, *user)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	subs, err := h.Subs.ListForUser(ctx, user.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_type":     user.UserType,
		"gate":          gate,
		"subscriptions": subs,
	})
}
