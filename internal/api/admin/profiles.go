package admin

import (
	"context"
	"net/http"

	"talent-marketplace/internal/api/reqctx"
	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/bands"
	"talent-marketplace/internal/domain/billing"
	"talent-marketplace/internal/domain/plans"
	"talent-marketplace/internal/domain/profiles"
	"talent-marketplace/internal/domain/scoring"
	"talent-marketplace/internal/logger"
	"talent-marketplace/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errStripeManaged = apperrors.New(apperrors.CodeConflict,
	"This account pays through Stripe. Cancel the subscription there instead.", http.StatusConflict)

// profileTarget resolves :type/:id to the row to update.
func profileTarget(c *gin.Context) (kind string, id uint, model any, err error) {
	id, err = reqctx.ParamID(c, "id")
	if err != nil {
		return "", 0, nil, err
	}
	switch kind = c.Param("type"); kind {
	case scoring.KindTalent:
		model = &profiles.TalentProfile{}
	case scoring.KindBackground:
		model = &profiles.BackgroundProfile{}
	case scoring.KindBand:
		model = &bands.Band{}
	default:
		return "", 0, nil, apperrors.Validation("type must be talent, background or band")
	}
	return kind, id, model, nil
}

// SetVerified toggles the verified badge, which feeds the score.
func (h *Handler) SetVerified(c *gin.Context) {
	kind, id, model, err := profileTarget(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	var body struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}

	ctx := c.Request.Context()
	res := h.DB.WithContext(ctx).Model(model).Where("id = ?", id).Update("is_verified", *body.Verified)
	if res.Error != nil {
		apperrors.Respond(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		apperrors.Respond(c, apperrors.ErrProfileNotFound)
		return
	}
	h.Scores.Invalidate(ctx, kind, id)

	logger.FromContext(ctx).Info("profile verification changed",
		zap.String("type", kind),
		zap.Uint("id", id),
		zap.Bool("verified", *body.Verified))
	c.JSON(http.StatusOK, gin.H{"type": kind, "id": id, "is_verified": *body.Verified})
}

// SetTier grants a paid tier without Stripe, or takes a manual grant back to free.
func (h *Handler) SetTier(c *gin.Context) {
	kind, id, model, err := profileTarget(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if kind == scoring.KindBand {
		apperrors.Respond(c, apperrors.Validation("Bands have no tier"))
		return
	}
	var body struct {
		Tier string `json:"tier" binding:"required,account_tier"`
	}
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}
	family := kind
	if !plans.IsValidTier(family, body.Tier) {
		apperrors.Respond(c, apperrors.Validation("Tier "+body.Tier+" does not exist for "+family+" accounts"))
		return
	}

	ctx := c.Request.Context()
	var userIDs []uint
	if err := h.DB.WithContext(ctx).Model(model).Where("id = ?", id).Pluck("user_id", &userIDs).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	if len(userIDs) == 0 {
		apperrors.Respond(c, apperrors.ErrProfileNotFound)
		return
	}
	userID := userIDs[0]

	if body.Tier == plans.TierFree {
		err = h.revokeTier(ctx, userID, family)
	} else {
		err = h.Subs.GrantManual(ctx, userID, family, body.Tier)
	}
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	logger.FromContext(ctx).Info("profile tier set by admin",
		zap.String("type", kind),
		zap.Uint("id", id),
		zap.String("tier", body.Tier))
	c.JSON(http.StatusOK, gin.H{"type": kind, "id": id, "tier": body.Tier})
}

// revokeTier ends a manual grant. A live Stripe subscription would restore the
// tier on its next webhook, so it is refused.
func (h *Handler) revokeTier(ctx context.Context, userID uint, family string) error {
	sub, err := h.Subs.FindSubscription(ctx, userID, family)
	if err != nil {
		return err
	}
	if sub == nil {
		return h.Subs.SyncTier(ctx, userID, family, plans.TierFree)
	}
	if sub.Live() && sub.StripeSubscriptionID != nil {
		return errStripeManaged
	}
	sub.Status = billing.StatusCanceled
	sub.IsActive = false
	return h.Subs.Save(ctx, sub)
}
